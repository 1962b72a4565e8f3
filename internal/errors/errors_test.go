package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "rando not found",
			expected: "NOT_FOUND: rando not found",
		},
		{
			name:     "backtrack error",
			code:     errors.CodeBacktrack,
			message:  "ran out of transitions",
			expected: "BACKTRACK: ran out of transitions",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.Backtrack("failsafe")
	wrapped := errors.Wrap(baseErr, "transition randomization failed")

	s.Assert().Equal(errors.CodeBacktrack, wrapped.Code)
	s.Assert().True(errors.IsBacktrack(wrapped))
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to store results")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to store results", wrapped.Message)
}

func (s *ErrorsTestSuite) TestWrapWithCodeKeepsMeta() {
	baseErr := errors.NotFound("missing").WithMeta("rando_id", "r1")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeFailedPrecondition, "result expired")

	s.Assert().Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.Assert().Equal("r1", wrapped.Meta["rando_id"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.Assert().True(errors.Is(errors.Wrap(errors.Backtrack("a"), "b"), errors.Backtrack("c")))
	s.Assert().False(errors.Backtrack("a").Is(errors.NotFound("a")))
}

func (s *ErrorsTestSuite) TestGetters() {
	err := errors.NotFound("user friendly").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped message")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestRetryable() {
	s.Assert().True(errors.CodeBacktrack.Retryable())
	s.Assert().False(errors.CodeFailedPrecondition.Retryable())
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	testCases := []struct {
		name string
		err  error
		code codes.Code
		back errors.Code
	}{
		{"backtrack maps to aborted", errors.Backtrack("x"), codes.Aborted, errors.CodeBacktrack},
		{"not found", errors.NotFound("x"), codes.NotFound, errors.CodeNotFound},
		{"precondition", errors.FailedPrecondition("x"), codes.FailedPrecondition, errors.CodeFailedPrecondition},
		{"plain error", fmt.Errorf("x"), codes.Internal, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			grpcErr := errors.ToGRPCError(tc.err)
			st, ok := status.FromError(grpcErr)
			s.Require().True(ok)
			s.Assert().Equal(tc.code, st.Code())
			s.Assert().Equal(tc.back, errors.GetCode(errors.FromGRPCError(grpcErr)))
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCKeepsMeta() {
	err := errors.ResourceExhaustedf("gave up after %d attempts", 3).WithMeta("rando_id", "rando_1")

	back := errors.FromGRPCError(errors.ToGRPCError(err))

	s.Assert().Equal(errors.CodeResourceExhausted, errors.GetCode(back))
	s.Assert().Equal("gave up after 3 attempts", errors.GetMessage(back))
	s.Assert().Equal(map[string]any{"rando_id": "rando_1"}, errors.GetMeta(back))
}

func (s *ErrorsTestSuite) TestGRPCForeignStatus() {
	err := status.Error(codes.Aborted, "stopped elsewhere")

	s.Assert().Equal(errors.CodeBacktrack, errors.GetCode(errors.FromGRPCError(err)))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(errors.FromGRPCError(status.Error(codes.DataLoss, "x"))))
}
