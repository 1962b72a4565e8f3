package delivery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/orchestrators/delivery"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/deliveries"
	deliveriesmock "github.com/KirkDiggler/rpg-rando/internal/repositories/deliveries/mock"
	resultsmock "github.com/KirkDiggler/rpg-rando/internal/repositories/results/mock"
	"github.com/KirkDiggler/rpg-rando/internal/testutils"
	"github.com/KirkDiggler/rpg-rando/internal/testutils/mocks"
)

const testRandoID = testutils.TestRandoID

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockResults    *resultsmock.MockRepository
	mockDeliveries *deliveriesmock.MockRepository
	svc            delivery.Service
	ctx            context.Context
	result         *rando.Result
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func sym(player int, name string) rando.Symbol {
	return rando.NewSymbol(player, name)
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockResults = resultsmock.NewMockRepository(s.ctrl)
	s.mockDeliveries = deliveriesmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	svc, err := delivery.NewOrchestrator(&delivery.Config{
		ResultsRepo:    s.mockResults,
		DeliveriesRepo: s.mockDeliveries,
	})
	s.Require().NoError(err)
	s.svc = svc

	s.result = testutils.CreateTestResult(testRandoID, 0, 2, map[rando.Symbol]rando.Symbol{
		sym(1, "Claw"):    sym(0, "Crossroads_Chest"),
		sym(0, "Dash"):    sym(0, "Greenpath_Chest"),
		sym(1, "Wings"):   sym(0, "Sly"),
		sym(0, "Lantern"): sym(0, "Sly"),
		sym(0, "Geo_A"):   sym(1, "Crossroads_Chest"),
	})
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectResult(player int) {
	mocks.ExpectResultLookup(s.ctx, s.mockResults, s.result, player)
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := delivery.NewOrchestrator(&delivery.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSendRoutesToOwner() {
	s.expectResult(0)
	want := rando.Delivery{Item: sym(1, "Claw"), From: 0}
	s.mockDeliveries.EXPECT().
		Enqueue(s.ctx, deliveries.EnqueueInput{RandoID: testRandoID, PlayerID: 1, Delivery: want}).
		Return(&deliveries.EnqueueOutput{InFlight: true}, nil)

	out, err := s.svc.Send(s.ctx, &delivery.SendInput{RandoID: testRandoID, PlayerID: 0, Location: "Crossroads_Chest"})
	s.Require().NoError(err)

	s.Equal([]rando.Symbol{sym(1, "Claw")}, out.Found)
	s.Equal([]delivery.SentItem{{Owner: 1, Delivery: want, InFlight: true}}, out.Sent)
}

func (s *OrchestratorTestSuite) TestSendKeepsOwnItems() {
	s.expectResult(0)

	out, err := s.svc.Send(s.ctx, &delivery.SendInput{RandoID: testRandoID, PlayerID: 0, Location: "Greenpath_Chest"})
	s.Require().NoError(err)
	s.Equal([]rando.Symbol{sym(0, "Dash")}, out.Found)
	s.Empty(out.Sent)
}

func (s *OrchestratorTestSuite) TestSendShopItem() {
	s.Run("one item", func() {
		s.expectResult(0)
		s.mockDeliveries.EXPECT().
			Enqueue(s.ctx, gomock.Any()).
			Return(&deliveries.EnqueueOutput{}, nil)

		out, err := s.svc.Send(s.ctx, &delivery.SendInput{
			RandoID:  testRandoID,
			Location: "Sly",
			Item:     "Wings",
		})
		s.Require().NoError(err)
		s.Equal([]rando.Symbol{sym(1, "Wings")}, out.Found)
		s.Require().Len(out.Sent, 1)
		s.False(out.Sent[0].InFlight)
	})

	s.Run("whole shop", func() {
		s.expectResult(0)
		s.mockDeliveries.EXPECT().
			Enqueue(s.ctx, gomock.Any()).
			Return(&deliveries.EnqueueOutput{}, nil)

		out, err := s.svc.Send(s.ctx, &delivery.SendInput{RandoID: testRandoID, Location: "Sly"})
		s.Require().NoError(err)
		s.Equal([]rando.Symbol{sym(0, "Lantern"), sym(1, "Wings")}, out.Found)
		s.Len(out.Sent, 1)
	})
}

func (s *OrchestratorTestSuite) TestSendNothingPlaced() {
	s.expectResult(0)

	_, err := s.svc.Send(s.ctx, &delivery.SendInput{RandoID: testRandoID, Location: "Nowhere"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSendUnknownRando() {
	mocks.ExpectResultMissing(s.ctx, s.mockResults, "missing")

	_, err := s.svc.Send(s.ctx, &delivery.SendInput{RandoID: "missing", Location: "Sly"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestJoinFlushesQueue() {
	s.expectResult(1)
	inFlight := []rando.Delivery{{Item: sym(1, "Claw"), From: 0}}

	gomock.InOrder(
		s.mockDeliveries.EXPECT().
			SetOnline(s.ctx, deliveries.SetOnlineInput{RandoID: testRandoID, PlayerID: 1, Online: true}).
			Return(&deliveries.SetOnlineOutput{}, nil),
		s.mockDeliveries.EXPECT().
			Flush(s.ctx, deliveries.FlushInput{RandoID: testRandoID, PlayerID: 1}).
			Return(&deliveries.FlushOutput{Moved: 1}, nil),
		s.mockDeliveries.EXPECT().
			Pending(s.ctx, deliveries.PendingInput{RandoID: testRandoID, PlayerID: 1}).
			Return(&deliveries.PendingOutput{InFlight: inFlight}, nil),
	)

	out, err := s.svc.Join(s.ctx, &delivery.JoinInput{RandoID: testRandoID, PlayerID: 1})
	s.Require().NoError(err)
	s.Equal(1, out.Moved)
	s.Equal(inFlight, out.InFlight)
}

func (s *OrchestratorTestSuite) TestLeave() {
	s.mockDeliveries.EXPECT().
		SetOnline(s.ctx, deliveries.SetOnlineInput{RandoID: testRandoID, PlayerID: 1, Online: false}).
		Return(nil, errors.Unavailable("redis down"))

	_, err := s.svc.Leave(s.ctx, &delivery.LeaveInput{RandoID: testRandoID, PlayerID: 1})
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestConfirm() {
	s.mockDeliveries.EXPECT().
		Confirm(s.ctx, deliveries.ConfirmInput{
			RandoID:  testRandoID,
			PlayerID: 1,
			Delivery: rando.Delivery{Item: sym(1, "Claw"), From: 0},
		}).
		Return(&deliveries.ConfirmOutput{Removed: 1}, nil)

	out, err := s.svc.Confirm(s.ctx, &delivery.ConfirmInput{RandoID: testRandoID, PlayerID: 1, Item: "Claw", From: 0})
	s.Require().NoError(err)
	s.Equal(1, out.Removed)

	_, err = s.svc.Confirm(s.ctx, &delivery.ConfirmInput{RandoID: testRandoID, PlayerID: 1})
	s.True(errors.IsInvalidArgument(err))
}
