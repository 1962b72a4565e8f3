package errors

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorDomain marks the ErrorInfo details this package attaches
const errorDomain = "rpg-rando"

// grpcCodes is one to one so FromGRPCError can invert it
var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeCanceled:           codes.Canceled,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodeResourceExhausted:  codes.ResourceExhausted,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeBacktrack:          codes.Aborted,
	CodeUnimplemented:      codes.Unimplemented,
	CodeInternal:           codes.Internal,
	CodeUnavailable:        codes.Unavailable,
}

// GRPCCode returns the corresponding gRPC code
func (c Code) GRPCCode() codes.Code {
	if code, ok := grpcCodes[c]; ok {
		return code
	}
	return codes.Unknown
}

// ToGRPCError converts an error to a gRPC status error. The error's code
// and metadata ride along as an ErrorInfo detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	info := &errdetails.ErrorInfo{
		Reason: customErr.Code.String(),
		Domain: errorDomain,
	}
	if len(customErr.Meta) > 0 {
		info.Metadata = make(map[string]string, len(customErr.Meta))
		for key, value := range customErr.Meta {
			info.Metadata[key] = fmt.Sprint(value)
		}
	}
	if detailed, detailErr := st.WithDetails(info); detailErr == nil {
		st = detailed
	}

	return st.Err()
}

// FromGRPCError converts a gRPC error to our custom error. Metadata values
// come back as strings.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := &Error{
		Code:    grpcCodeToCode(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != errorDomain {
			continue
		}
		out.Code = Code(info.GetReason())
		for key, value := range info.GetMetadata() {
			out.WithMeta(key, value)
		}
	}

	return out
}

func grpcCodeToCode(grpcCode codes.Code) Code {
	for code, candidate := range grpcCodes {
		if candidate == grpcCode {
			return code
		}
	}
	return CodeInternal
}
