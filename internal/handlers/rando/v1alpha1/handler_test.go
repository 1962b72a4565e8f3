package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/handlers/rando/v1alpha1"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery"
	deliverymock "github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery/mock"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation"
	generationmock "github.com/KirkDiggler/rpg-rando/internal/orchestrators/generation/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockGeneration *generationmock.MockService
	mockDelivery   *deliverymock.MockService
	generation     *v1alpha1.GenerationHandler
	delivery       *v1alpha1.DeliveryHandler
	ctx            context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockGeneration = generationmock.NewMockService(s.ctrl)
	s.mockDelivery = deliverymock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.generation, err = v1alpha1.NewGenerationHandler(&v1alpha1.GenerationHandlerConfig{
		GenerationService: s.mockGeneration,
	})
	s.Require().NoError(err)

	s.delivery, err = v1alpha1.NewDeliveryHandler(&v1alpha1.DeliveryHandlerConfig{
		DeliveryService: s.mockDelivery,
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok, "expected a status error, got %v", err)
	s.Equal(code, st.Code())
}

func (s *HandlerTestSuite) TestGenerate() {
	settings := []rando.Settings{{Seed: 4, Pools: []string{"Skill"}}}
	result := &rando.Result{RandoID: "rando_1"}

	s.mockGeneration.EXPECT().
		Generate(s.ctx, &generation.GenerateInput{Settings: settings, Nicknames: []string{"Quirrel"}}).
		Return(&generation.GenerateOutput{RandoID: "rando_1", Attempts: 2, Results: []*rando.Result{result}}, nil)

	resp, err := s.generation.Generate(s.ctx, &v1alpha1.GenerateRequest{Settings: settings, Nicknames: []string{"Quirrel"}})
	s.Require().NoError(err)
	s.Equal("rando_1", resp.RandoID)
	s.Equal(2, resp.Attempts)
	s.Equal([]*rando.Result{result}, resp.Results)
}

func (s *HandlerTestSuite) TestGenerateErrors() {
	s.Run("settings required", func() {
		_, err := s.generation.Generate(s.ctx, &v1alpha1.GenerateRequest{})
		s.requireCode(err, codes.InvalidArgument)
	})

	s.Run("attempt budget", func() {
		s.mockGeneration.EXPECT().
			Generate(s.ctx, gomock.Any()).
			Return(nil, errors.ResourceExhaustedf("no valid rando after %d attempts", 100))

		_, err := s.generation.Generate(s.ctx, &v1alpha1.GenerateRequest{Settings: []rando.Settings{{}}})
		s.requireCode(err, codes.ResourceExhausted)
	})

	s.Run("contradictory settings", func() {
		s.mockGeneration.EXPECT().
			Generate(s.ctx, gomock.Any()).
			Return(nil, errors.FailedPrecondition("areas and rooms cannot both be randomized"))

		_, err := s.generation.Generate(s.ctx, &v1alpha1.GenerateRequest{Settings: []rando.Settings{{}}})
		s.requireCode(err, codes.FailedPrecondition)
	})
}

func (s *HandlerTestSuite) TestGetResult() {
	s.mockGeneration.EXPECT().
		GetResult(s.ctx, &generation.GetResultInput{RandoID: "rando_1", PlayerID: 1}).
		Return(nil, errors.NotFound("no result"))

	_, err := s.generation.GetResult(s.ctx, &v1alpha1.GetResultRequest{RandoID: "rando_1", PlayerID: 1})
	s.requireCode(err, codes.NotFound)

	_, err = s.generation.GetResult(s.ctx, &v1alpha1.GetResultRequest{})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestSend() {
	d := rando.Delivery{Item: rando.NewSymbol(1, "Claw"), From: 0}
	s.mockDelivery.EXPECT().
		Send(s.ctx, &delivery.SendInput{RandoID: "rando_1", PlayerID: 0, Location: "Sly", Item: "Claw"}).
		Return(&delivery.SendOutput{
			Found: []rando.Symbol{d.Item},
			Sent:  []delivery.SentItem{{Owner: 1, Delivery: d}},
		}, nil)

	resp, err := s.delivery.Send(s.ctx, &v1alpha1.SendRequest{RandoID: "rando_1", Location: "Sly", Item: "Claw"})
	s.Require().NoError(err)
	s.Equal([]rando.Symbol{d.Item}, resp.Found)
	s.Equal([]v1alpha1.SentItem{{Owner: 1, Delivery: d}}, resp.Sent)

	_, err = s.delivery.Send(s.ctx, &v1alpha1.SendRequest{RandoID: "rando_1"})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestPresence() {
	gomock.InOrder(
		s.mockDelivery.EXPECT().
			Join(s.ctx, &delivery.JoinInput{RandoID: "rando_1", PlayerID: 1}).
			Return(&delivery.JoinOutput{Moved: 3}, nil),
		s.mockDelivery.EXPECT().
			Leave(s.ctx, &delivery.LeaveInput{RandoID: "rando_1", PlayerID: 1}).
			Return(&delivery.LeaveOutput{}, nil),
	)

	joined, err := s.delivery.Join(s.ctx, &v1alpha1.PlayerRequest{RandoID: "rando_1", PlayerID: 1})
	s.Require().NoError(err)
	s.Equal(3, joined.Moved)

	_, err = s.delivery.Leave(s.ctx, &v1alpha1.PlayerRequest{RandoID: "rando_1", PlayerID: 1})
	s.Require().NoError(err)

	_, err = s.delivery.Join(s.ctx, &v1alpha1.PlayerRequest{RandoID: "rando_1", PlayerID: -1})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestPendingAndConfirm() {
	inFlight := []rando.Delivery{{Item: rando.NewSymbol(1, "Claw"), From: 0}}
	s.mockDelivery.EXPECT().
		Pending(s.ctx, &delivery.PendingInput{RandoID: "rando_1", PlayerID: 1}).
		Return(&delivery.PendingOutput{InFlight: inFlight}, nil)
	s.mockDelivery.EXPECT().
		Confirm(s.ctx, &delivery.ConfirmInput{RandoID: "rando_1", PlayerID: 1, Item: "Claw", From: 0}).
		Return(&delivery.ConfirmOutput{Removed: 1}, nil)

	pending, err := s.delivery.Pending(s.ctx, &v1alpha1.PlayerRequest{RandoID: "rando_1", PlayerID: 1})
	s.Require().NoError(err)
	s.Equal(inFlight, pending.InFlight)

	confirmed, err := s.delivery.Confirm(s.ctx, &v1alpha1.ConfirmRequest{RandoID: "rando_1", PlayerID: 1, Item: "Claw"})
	s.Require().NoError(err)
	s.Equal(1, confirmed.Removed)

	_, err = s.delivery.Confirm(s.ctx, &v1alpha1.ConfirmRequest{RandoID: "rando_1", PlayerID: 1})
	s.requireCode(err, codes.InvalidArgument)
}
