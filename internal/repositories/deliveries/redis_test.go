package deliveries_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/repositories/deliveries"
	"github.com/KirkDiggler/rpg-rando/internal/testutils"
)

const (
	testRandoID     = "rando_1"
	testQueuedKey   = "rando:rando_1:player:1:queued"
	testInFlightKey = "rando:rando_1:player:1:inflight"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo deliveries.Repository
	ctx  context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	repo, err := deliveries.NewRedisRepository(&deliveries.Config{Client: client, TTL: time.Hour})
	s.Require().NoError(err)

	s.mr = mr
	s.repo = repo
	s.ctx = context.Background()
}

func delivery(name string) rando.Delivery {
	return rando.Delivery{Item: rando.NewSymbol(1, name), From: 0}
}

func (s *RedisRepositoryTestSuite) enqueue(names ...string) {
	for _, name := range names {
		_, err := s.repo.Enqueue(s.ctx, deliveries.EnqueueInput{
			RandoID:  testRandoID,
			PlayerID: 1,
			Delivery: delivery(name),
		})
		s.Require().NoError(err)
	}
}

func (s *RedisRepositoryTestSuite) setOnline(online bool) {
	_, err := s.repo.SetOnline(s.ctx, deliveries.SetOnlineInput{RandoID: testRandoID, PlayerID: 1, Online: online})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) pending() *deliveries.PendingOutput {
	out, err := s.repo.Pending(s.ctx, deliveries.PendingInput{RandoID: testRandoID, PlayerID: 1})
	s.Require().NoError(err)
	return out
}

func (s *RedisRepositoryTestSuite) TestOfflineOwnerQueues() {
	out, err := s.repo.Enqueue(s.ctx, deliveries.EnqueueInput{
		RandoID:  testRandoID,
		PlayerID: 1,
		Delivery: delivery("Claw"),
	})
	s.Require().NoError(err)
	s.False(out.InFlight)

	pending := s.pending()
	s.Empty(pending.InFlight)
	s.Equal([]rando.Delivery{delivery("Claw")}, pending.Queued)
	s.True(s.mr.Exists(testQueuedKey))
}

func (s *RedisRepositoryTestSuite) TestOnlineOwnerGetsItInFlight() {
	s.setOnline(true)

	out, err := s.repo.Enqueue(s.ctx, deliveries.EnqueueInput{
		RandoID:  testRandoID,
		PlayerID: 1,
		Delivery: delivery("Claw"),
	})
	s.Require().NoError(err)
	s.True(out.InFlight)

	pending := s.pending()
	s.Equal([]rando.Delivery{delivery("Claw")}, pending.InFlight)
	s.Empty(pending.Queued)
}

func (s *RedisRepositoryTestSuite) TestFlushKeepsOrder() {
	s.enqueue("Claw", "Dash", "Wings")

	out, err := s.repo.Flush(s.ctx, deliveries.FlushInput{RandoID: testRandoID, PlayerID: 1})
	s.Require().NoError(err)
	s.Equal(3, out.Moved)

	pending := s.pending()
	s.Equal([]rando.Delivery{delivery("Claw"), delivery("Dash"), delivery("Wings")}, pending.InFlight)
	s.Empty(pending.Queued)
	s.False(s.mr.Exists(testQueuedKey))
}

func (s *RedisRepositoryTestSuite) TestFlushAppendsAfterInFlight() {
	s.setOnline(true)
	s.enqueue("Claw")
	s.setOnline(false)
	s.enqueue("Dash")

	_, err := s.repo.Flush(s.ctx, deliveries.FlushInput{RandoID: testRandoID, PlayerID: 1})
	s.Require().NoError(err)

	s.Equal([]rando.Delivery{delivery("Claw"), delivery("Dash")}, s.pending().InFlight)
}

func (s *RedisRepositoryTestSuite) TestFlushEmptyQueue() {
	out, err := s.repo.Flush(s.ctx, deliveries.FlushInput{RandoID: testRandoID, PlayerID: 1})
	s.Require().NoError(err)
	s.Zero(out.Moved)
}

func (s *RedisRepositoryTestSuite) TestConfirmRemovesMatchingEntries() {
	s.setOnline(true)
	s.enqueue("Claw", "Dash", "Claw")

	out, err := s.repo.Confirm(s.ctx, deliveries.ConfirmInput{
		RandoID:  testRandoID,
		PlayerID: 1,
		Delivery: delivery("Claw"),
	})
	s.Require().NoError(err)
	s.Equal(2, out.Removed)
	s.Equal([]rando.Delivery{delivery("Dash")}, s.pending().InFlight)

	s.Run("sender must match", func() {
		out, err := s.repo.Confirm(s.ctx, deliveries.ConfirmInput{
			RandoID:  testRandoID,
			PlayerID: 1,
			Delivery: rando.Delivery{Item: rando.NewSymbol(1, "Dash"), From: 2},
		})
		s.Require().NoError(err)
		s.Zero(out.Removed)
	})
}

func (s *RedisRepositoryTestSuite) TestConfirmIgnoresQueued() {
	s.enqueue("Claw")

	out, err := s.repo.Confirm(s.ctx, deliveries.ConfirmInput{
		RandoID:  testRandoID,
		PlayerID: 1,
		Delivery: delivery("Claw"),
	})
	s.Require().NoError(err)
	s.Zero(out.Removed)
	s.Len(s.pending().Queued, 1)
}

func (s *RedisRepositoryTestSuite) TestListsExpire() {
	s.setOnline(true)
	s.enqueue("Claw")
	s.True(s.mr.Exists(testInFlightKey))

	s.mr.FastForward(2 * time.Hour)

	s.False(s.mr.Exists(testInFlightKey))
	s.False(s.mr.Exists("rando:rando_1:online"))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Enqueue(s.ctx, deliveries.EnqueueInput{PlayerID: 1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Pending(s.ctx, deliveries.PendingInput{RandoID: testRandoID, PlayerID: -1})
	s.True(errors.IsInvalidArgument(err))

	_, err = deliveries.NewRedisRepository(&deliveries.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
