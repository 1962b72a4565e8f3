package validation_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/validation"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-rando/internal/testutils"
)

type placements struct {
	nonShop   map[rando.Symbol]rando.Symbol
	shop      map[rando.Symbol][]rando.Symbol
	shops     []rando.Symbol
	locations []rando.Symbol
	items     []rando.Symbol
	fillShops bool
}

func (p *placements) NonShopItems() map[rando.Symbol]rando.Symbol { return p.nonShop }
func (p *placements) ShopItems() map[rando.Symbol][]rando.Symbol  { return p.shop }
func (p *placements) Shops() []rando.Symbol                       { return p.shops }
func (p *placements) RandomizedLocations() []rando.Symbol         { return p.locations }
func (p *placements) RandomizedItems() []rando.Symbol             { return p.items }
func (p *placements) NormalFillShops() bool                       { return p.fillShops }

func sym(name string) rando.Symbol {
	return rando.NewSymbol(0, name)
}

type ValidatorTestSuite struct {
	suite.Suite
	toy *logic.Database
	ctx *attempt.Context
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) SetupSuite() {
	s.toy = testutils.LoadWorld(s.T(), testutils.ToyWorldYAML)
}

func (s *ValidatorTestSuite) SetupTest() {
	ctx, err := attempt.New(&attempt.Config{
		World:    s.toy,
		Rand:     rng.New(1),
		Settings: []rando.Settings{testutils.DefaultSettings(1, "Stuff")},
	})
	s.Require().NoError(err)
	s.ctx = ctx
}

func (s *ValidatorTestSuite) toyPlacements(a, b, c string) *placements {
	return &placements{
		nonShop: map[rando.Symbol]rando.Symbol{
			sym("A"): sym(a),
			sym("B"): sym(b),
			sym("C"): sym(c),
		},
		shop:      map[rando.Symbol][]rando.Symbol{},
		locations: []rando.Symbol{sym("A"), sym("B"), sym("C")},
		items:     []rando.Symbol{sym("Key"), sym("Sword"), sym("Junk")},
	}
}

func (s *ValidatorTestSuite) TestCompletable() {
	s.NoError(validation.Validate(s.ctx, s.toyPlacements("Key", "Sword", "Junk")))
	s.NoError(validation.Validate(s.ctx, s.toyPlacements("Sword", "Junk", "Key")))
}

func (s *ValidatorTestSuite) TestLockedProgression() {
	err := validation.Validate(s.ctx, s.toyPlacements("Junk", "Key", "Sword"))

	s.Require().Error(err)
	s.True(errors.IsBacktrack(err))
	meta := errors.GetMeta(err)
	s.Equal([]string{"MW(1)_B", "MW(1)_C"}, meta["unobtained_locations"])
	s.Equal(2, meta["unobtained_items"])
}

func (s *ValidatorTestSuite) TestUnfilledLocation() {
	p := s.toyPlacements("Key", "Sword", "Junk")
	delete(p.nonShop, sym("C"))

	err := validation.Validate(s.ctx, p)
	s.True(errors.IsBacktrack(err))
	s.Contains(err.Error(), "MW(1)_C")
}

func (s *ValidatorTestSuite) TestItemPlacedTwice() {
	err := validation.Validate(s.ctx, s.toyPlacements("Key", "Key", "Sword"))

	s.True(errors.IsBacktrack(err))
	s.Contains(err.Error(), "placed twice")
}

func (s *ValidatorTestSuite) TestEmptyShop() {
	world := testutils.LoadWorld(s.T(), testutils.HallownestYAML)
	ctx, err := attempt.New(&attempt.Config{
		World:    world,
		Rand:     rng.New(1),
		Settings: []rando.Settings{testutils.DefaultSettings(1, "Skill")},
	})
	s.Require().NoError(err)

	p := &placements{
		nonShop:   map[rando.Symbol]rando.Symbol{},
		shop:      map[rando.Symbol][]rando.Symbol{sym("Sly"): {sym("Geo_A")}, sym("Salubra"): nil},
		shops:     []rando.Symbol{sym("Sly"), sym("Salubra")},
		locations: []rando.Symbol{sym("Sly"), sym("Salubra")},
		items:     []rando.Symbol{sym("Geo_A")},
		fillShops: true,
	}

	err = validation.Validate(ctx, p)
	s.True(errors.IsBacktrack(err))
	s.Contains(err.Error(), "left empty")

	// Claw and Dash are shuffled and placed nowhere, so Salubra stays shut
	p.fillShops = false
	err = validation.Validate(ctx, p)
	s.Require().Error(err)
	s.True(errors.IsBacktrack(err))
	s.Contains(errors.GetMeta(err)["unobtained_locations"], "MW(1)_Salubra")
}

func (s *ValidatorTestSuite) TestWalksRandomizedTransitions() {
	world := testutils.LoadWorld(s.T(), testutils.TransitWorldYAML)
	ctx, err := attempt.New(&attempt.Config{
		World:    world,
		Rand:     rng.New(1),
		Settings: []rando.Settings{testutils.DefaultSettings(1)},
	})
	s.Require().NoError(err)
	ctx.StartNames[0] = "Town_Start"
	ctx.StartProgression[0] = []string{"Town[right1]"}
	ctx.RandomizedTransitions[0] = []string{"Green[right1]"}

	empty := &placements{nonShop: map[rando.Symbol]rando.Symbol{}, shop: map[rando.Symbol][]rando.Symbol{}}
	s.NoError(validation.Validate(ctx, empty))

	ctx.RandomizedTransitions[0] = append(ctx.RandomizedTransitions[0], "Green[top1]")
	delete(ctx.Transitions[0], "Fungal[bot1]")

	err = validation.Validate(ctx, empty)
	s.True(errors.IsBacktrack(err), "nothing leads into the one-way exit")
	s.Equal(1, errors.GetMeta(err)["unobtained_transitions"])
}
