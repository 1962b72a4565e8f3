package transitions_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/progression"
	"github.com/KirkDiggler/rpg-rando/internal/engine/transitions"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-rando/internal/testutils"
)

type DirectedTestSuite struct {
	suite.Suite
	world *logic.Database
	pool  *transitions.Directed
}

func TestDirectedTestSuite(t *testing.T) {
	suite.Run(t, new(DirectedTestSuite))
}

func (s *DirectedTestSuite) SetupSuite() {
	s.world = testutils.LoadWorld(s.T(), testutils.TransitWorldYAML)
}

func (s *DirectedTestSuite) SetupTest() {
	s.pool = transitions.NewDirected(s.world, rng.New(1))
}

func (s *DirectedTestSuite) TestPartnersFollowDoorClasses() {
	s.pool.Add("Town[right1]", "Cross_01[left1]", "Cross_01[top1]", "Cross_02[bot1]", "Green[left1]")

	s.ElementsMatch([]string{"Cross_01[left1]", "Green[left1]"}, s.pool.Partners("Cross_02[right1]"))
	s.Equal([]string{"Town[right1]"}, s.pool.Partners("Fungal[left1]"))
	s.Equal([]string{"Cross_02[bot1]"}, s.pool.Partners("Fungal[top1]"))
	s.Equal([]string{"Cross_01[top1]"}, s.pool.Partners("Town[bot1]"))
}

func (s *DirectedTestSuite) TestAddIgnoresRepeatsAndRemove() {
	s.pool.Add("Town[right1]", "Town[right1]", "Town[bot1]")
	s.Equal(2, s.pool.Count())

	s.pool.Remove("Town[right1]")
	s.Equal([]string{"Town[bot1]"}, s.pool.All())
	s.False(s.pool.Contains("Town[right1]"))
	s.False(s.pool.Test("Cross_01[left1]"))
	s.True(s.pool.Test("Fungal[top1]"))
}

func (s *DirectedTestSuite) TestNextFavorsSameArea() {
	s.pool.Add("Town[right1]", "Cross_02[right1]", "Green[right1]")

	for range 20 {
		next, ok := s.pool.Next("Cross_01[left1]", true)
		s.Require().True(ok)
		s.Equal("Cross_02[right1]", next)
	}

	_, ok := s.pool.Next("Town[bot1]", true)
	s.False(ok)
}

func (s *DirectedTestSuite) TestPlacePairRenotifiesHeldSides() {
	settings := testutils.DefaultSettings(1)
	settings.RandomizeAreas = true
	ctx, err := attempt.New(&attempt.Config{World: s.world, Rand: rng.New(1), Settings: []rando.Settings{settings}})
	s.Require().NoError(err)

	tm := transitions.NewManager(ctx, 0)
	s.NotContains(ctx.Transitions[0], "Town[right1]", "shuffled doors lose their vanilla target")
	s.Equal("Cross_02[left1]", ctx.Transitions[0]["Cross_01[right1]"])
	s.NotContains(tm.Unplaced(), "Fungal[bot1]")

	pm := progression.New(ctx)
	tm.Track(pm)
	pm.Add(rando.NewSymbol(0, "Town[right1]"))
	ctx.DrainRecent()

	tm.PlacePair("Town[right1]", "Green[left1]")

	s.Equal([]rando.Symbol{rando.NewSymbol(0, "Town[right1]")}, ctx.DrainRecent())
	s.Equal("Green[left1]", ctx.Transitions[0]["Town[right1]"])
	s.Equal("Town[right1]", ctx.Transitions[0]["Green[left1]"])
	s.False(tm.IsUnplaced("Green[left1]"))
}

func (s *DirectedTestSuite) TestStandbyUnloadsWhenReachable() {
	settings := testutils.DefaultSettings(1)
	settings.RandomizeRooms = true
	ctx, err := attempt.New(&attempt.Config{World: s.world, Rand: rng.New(1), Settings: []rando.Settings{settings}})
	s.Require().NoError(err)

	tm := transitions.NewManager(ctx, 0)
	pm := progression.New(ctx)
	tm.Track(pm)

	tm.PlaceStandbyPair("Green[right1]", "Fungal[left1]")
	s.False(tm.UnloadReachableStandby())
	s.ElementsMatch([]string{"Green[right1]", "Fungal[left1]"}, tm.Standby())

	pm.Add(rando.NewSymbol(0, "Fungal[left1]"))
	s.True(tm.UnloadReachableStandby())
	s.Empty(tm.Standby())
	s.Equal("Fungal[left1]", ctx.Transitions[0]["Green[right1]"])
}
