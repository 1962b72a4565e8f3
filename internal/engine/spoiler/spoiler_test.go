package spoiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-rando/internal/engine/spoiler"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/testutils"
)

type SpoilerTestSuite struct {
	suite.Suite
	world  *logic.Database
	result *rando.Result
}

func TestSpoilerTestSuite(t *testing.T) {
	suite.Run(t, new(SpoilerTestSuite))
}

func sym(player int, name string) rando.Symbol {
	return rando.NewSymbol(player, name)
}

func (s *SpoilerTestSuite) SetupTest() {
	s.world = testutils.LoadWorld(s.T(), testutils.HallownestYAML)
	s.result = &rando.Result{
		PlayerID:   0,
		Players:    2,
		Seed:       1234,
		Attempts:   3,
		Settings:   testutils.DefaultSettings(1234, "Skill", "Geo"),
		StartName:  "Kings_Pass",
		StartItems: []string{"Charm_Heart"},
		ItemPlacements: map[rando.Symbol]rando.Symbol{
			sym(0, "Claw"):  sym(0, "Geo_A"),
			sym(1, "Dash"):  sym(0, "Sly"),
			sym(0, "Geo_A"): sym(0, "Seer"),
			sym(0, "Geo_B"): sym(1, "Claw"),
		},
		LocationOrder: map[rando.Symbol]int{
			sym(0, "Geo_A"): 1,
			sym(0, "Sly"):   2,
			sym(0, "Seer"):  3,
			sym(1, "Claw"):  4,
		},
		ShopCosts:     map[rando.Symbol]int{sym(1, "Dash"): 250},
		VariableCosts: map[rando.Symbol]int{sym(0, "Seer"): 120},
		Nicknames:     []string{"Hornet"},
	}
}

func (s *SpoilerTestSuite) TestHeader() {
	text := spoiler.Build(s.world, s.result)

	s.True(strings.HasPrefix(text, spoiler.HeaderSettings+"\n"))
	s.Contains(text, "Player: Hornet (1 of 2)\n")
	s.Contains(text, "Seed: 1234\n")
	s.Contains(text, "Pools: Skill, Geo\n")
	s.Contains(text, "Transitions: vanilla\n")
	s.Contains(text, "Start items: Charm_Heart\n")
	s.NotContains(text, spoiler.HeaderTransitions)
}

func (s *SpoilerTestSuite) TestProgressionInOrder() {
	text := spoiler.Build(s.world, s.result)

	claw := strings.Index(text, "(1) MW(1)_Claw<---at--->MW(1)_Geo_A\n")
	dash := strings.Index(text, "(2) MW(2)_Dash<---at--->MW(1)_Sly (250 geo)\n")
	s.GreaterOrEqual(claw, 0)
	s.Greater(dash, claw)
	s.NotContains(text, "(3) MW(1)_Geo_A")
}

func (s *SpoilerTestSuite) TestItemsGroupedByArea() {
	text := spoiler.Build(s.world, s.result)
	items := text[strings.Index(text, spoiler.HeaderItems):]

	s.Contains(items, "Dirtmouth:\n  MW(1)_Claw<---at--->MW(1)_Geo_A\n  MW(1)_Geo_A<---at--->MW(1)_Seer (120 essence)\n")
	s.Contains(items, spoiler.HeaderShops+"\nSly:\n  MW(2)_Dash<---at--->MW(1)_Sly (250 geo)\n")
	s.NotContains(items, "MW(2)_Claw", "other worlds are left to their own logs")
}

func (s *SpoilerTestSuite) TestTransitions() {
	s.result.Settings.RandomizeRooms = true
	s.result.TransitionPlacements = map[string]string{
		"Town[right1]":    "Green[left1]",
		"Cross_01[left1]": "Fungal[right1]",
	}

	text := spoiler.Build(s.world, s.result)

	s.Contains(text, "Transitions: rooms\n")
	s.Contains(text, spoiler.HeaderTransitions+"\nCross_01[left1] ---> Fungal[right1]\nTown[right1] ---> Green[left1]\n")
}
