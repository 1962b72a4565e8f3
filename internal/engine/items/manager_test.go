package items_test

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/items"
	"github.com/KirkDiggler/rpg-rando/internal/engine/progression"
	"github.com/KirkDiggler/rpg-rando/internal/engine/validation"
	"github.com/KirkDiggler/rpg-rando/internal/engine/vanilla"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-rando/internal/testutils"
)

var allPools = []string{"Skill", "Key", "Charm", "Geo", "Grub", "Root"}

type ManagerTestSuite struct {
	suite.Suite
	toy        *logic.Database
	hallownest *logic.Database
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupSuite() {
	s.toy = testutils.LoadWorld(s.T(), testutils.ToyWorldYAML)
	s.hallownest = testutils.LoadWorld(s.T(), testutils.HallownestYAML)
}

type run struct {
	ctx *attempt.Context
	pm  *progression.Manager
	im  *items.Manager
}

func (s *ManagerTestSuite) newRun(world *logic.Database, src *rng.Source, settings ...rando.Settings) *run {
	ctx, err := attempt.New(&attempt.Config{World: world, Rand: src, Settings: settings})
	s.Require().NoError(err)

	pm := progression.New(ctx)
	im, err := items.New(&items.Config{
		Attempt:     ctx,
		Progression: pm,
		Vanilla:     vanilla.New(ctx),
	})
	s.Require().NoError(err)

	return &run{ctx: ctx, pm: pm, im: im}
}

// generate retries whole attempts on one stream the way the orchestrator
// does
func (s *ManagerTestSuite) generate(world *logic.Database, seed int64, settings ...rando.Settings) *run {
	src := rng.New(seed)
	for i := 0; i < 50; i++ {
		r := s.newRun(world, src, settings...)
		r.im.FirstPass()
		r.im.SecondPass()
		r.im.PlaceDuplicates()

		err := validation.Validate(r.ctx, r.im)
		if err == nil {
			return r
		}
		s.Require().True(errors.IsBacktrack(err), "unexpected error %v", err)
	}
	s.FailNow("no valid attempt in 50 tries")
	return nil
}

func sym(name string) rando.Symbol {
	return rando.NewSymbol(0, name)
}

func (s *ManagerTestSuite) TestToyScenario() {
	for seed := int64(0); seed < 20; seed++ {
		r := s.newRun(s.toy, rng.New(seed), testutils.DefaultSettings(seed, "Stuff"))
		s.Equal(1, r.im.AvailableCount(), "only A is reachable at the start")

		r.im.FirstPass()
		r.im.SecondPass()
		s.Require().NoError(validation.Validate(r.ctx, r.im), "seed %d", seed)

		placed := r.im.NonShopItems()
		first := placed[sym("A")]
		s.Contains([]rando.Symbol{sym("Key"), sym("Sword")}, first, "seed %d", seed)
		if first == sym("Key") {
			s.Equal(sym("Sword"), placed[sym("B")])
			s.Equal(sym("Junk"), placed[sym("C")])
		} else {
			s.Equal(sym("Key"), placed[sym("C")])
			s.Equal(sym("Junk"), placed[sym("B")])
		}
		s.Equal(1, r.im.LocationOrder()[sym("A")])
	}
}

func (s *ManagerTestSuite) TestForceItemLeavesNoTrace() {
	r := s.newRun(s.toy, rng.New(3), testutils.DefaultSettings(3, "Stuff"))

	item, ok := r.im.ForceItem()
	s.Require().True(ok)
	s.False(r.pm.InTempScope())
	s.False(r.pm.Has(item))
	s.False(r.im.IsReachable(sym("B")))
	s.False(r.im.IsReachable(sym("C")))
}

func (s *ManagerTestSuite) TestBijection() {
	r := s.generate(s.hallownest, 11, testutils.DefaultSettings(11, allPools...))

	locations := r.im.ItemLocations()
	s.Len(locations, len(r.im.RandomizedItems()))
	for _, item := range r.im.RandomizedItems() {
		_, ok := locations[item]
		s.True(ok, "item %s placed", item)
	}

	seen := make(map[rando.Symbol]bool)
	for loc, item := range r.im.NonShopItems() {
		s.True(r.im.IsRandomizedLocation(loc))
		s.False(seen[item], "item %s placed once", item)
		seen[item] = true
	}
	for _, shop := range r.im.Shops() {
		s.NotEmpty(r.im.ShopItems()[shop], "shop %s filled", shop)
	}
}

func (s *ManagerTestSuite) TestDeterminism() {
	settings := []rando.Settings{
		testutils.DefaultSettings(99, allPools...),
		testutils.DefaultSettings(0, "Skill", "Geo"),
	}

	a := s.generate(s.hallownest, 99, settings...)
	b := s.generate(s.hallownest, 99, settings...)

	s.Equal(a.im.NonShopItems(), b.im.NonShopItems())
	s.Equal(a.im.ShopItems(), b.im.ShopItems())
	s.Equal(a.im.LocationOrder(), b.im.LocationOrder())
}

func (s *ManagerTestSuite) TestMonotonicReachability() {
	r := s.newRun(s.hallownest, rng.New(5), testutils.DefaultSettings(5, allPools...))

	var reached []rando.Symbol
	for _, item := range []string{"Claw", "Dash", "Lantern", "Wings", "Simple_Key", "City_Crest"} {
		loc, ok := r.im.FindNextLocation()
		s.Require().True(ok)
		r.im.PlaceItem(sym(item), loc)

		for _, prev := range reached {
			s.True(r.im.IsReachable(prev), "%s stays reachable", prev)
			s.True(r.pm.CanGet(prev), "%s stays obtainable", prev)
		}
		reached = reached[:0]
		for _, loc := range r.im.RandomizedLocations() {
			if r.im.IsReachable(loc) {
				reached = append(reached, loc)
			}
		}
	}
	s.NotEmpty(reached)
}

func (s *ManagerTestSuite) TestStartItemsAreNotPlaced() {
	settings := testutils.DefaultSettings(4, allPools...)
	r := s.newRun(s.hallownest, rng.New(4), settings)
	s.Contains(r.im.RandomizedItems(), sym("Claw"))

	ctx, err := attempt.New(&attempt.Config{World: s.hallownest, Rand: rng.New(4), Settings: []rando.Settings{settings}})
	s.Require().NoError(err)
	ctx.StartItems[0] = []string{"Claw", "Charm_Heart"}
	ctx.StartProgression[0] = []string{"Claw"}

	pm := progression.New(ctx)
	im, err := items.New(&items.Config{Attempt: ctx, Progression: pm, Vanilla: vanilla.New(ctx)})
	s.Require().NoError(err)

	s.NotContains(im.RandomizedItems(), sym("Claw"))
	s.NotContains(im.RandomizedItems(), sym("Charm_Heart"))
	s.True(pm.Has(sym("Claw")))
	s.True(im.IsReachable(sym("Dash")))
}

func (s *ManagerTestSuite) TestVanillaProgressionIsFolded() {
	// Lantern stays in Sly's shop and Key pool progression is vanilla
	r := s.newRun(s.hallownest, rng.New(8), testutils.DefaultSettings(8, "Skill", "Geo"))

	s.True(r.pm.Has(sym("Lantern")), "Sly is free so its Lantern is obtained")
	s.False(r.pm.Has(sym("Simple_Key")), "Sly_2 needs the upper hub")
}

func (s *ManagerTestSuite) TestDuplicatesArePlacedPastTheEarlyGame() {
	settings := testutils.DefaultSettings(21, allPools...)
	settings.DuplicateMajorItems = true

	src := rng.New(21)
	var r *run
	var before map[rando.Symbol]rando.Symbol
	for range 50 {
		r = s.newRun(s.hallownest, src, settings)
		r.im.FirstPass()
		r.im.SecondPass()
		before = maps.Clone(r.im.NonShopItems())
		r.im.PlaceDuplicates()

		err := validation.Validate(r.ctx, r.im)
		if err == nil {
			break
		}
		s.Require().True(errors.IsBacktrack(err), "unexpected error %v", err)
		r = nil
	}
	s.Require().NotNil(r, "no valid attempt in 50 tries")

	order := r.im.LocationOrder()
	deepest := 0
	for _, o := range order {
		deepest = max(deepest, o)
	}
	early := min(20, deepest/4)

	locations := r.im.ItemLocations()
	displaced := 0
	for _, name := range []string{"Claw", "Dash", "Wings"} {
		dup := sym(rando.DuplicateName(name))
		loc, ok := locations[dup]
		s.Require().True(ok, "%s placed", dup)
		s.NotEqual(locations[sym(name)], loc)
		if s.hallownest.IsShop(loc.Name) {
			continue
		}
		displaced++

		s.Greater(order[loc], early, "%s sits past the early game", dup)
		junk, ok := before[loc]
		s.Require().True(ok, "%s held an item before", loc)
		s.False(s.hallownest.IsProgression(junk.Name), "%s displaced junk", dup)
		s.True(s.hallownest.IsShop(locations[junk].Name), "%s moved to a shop", junk)
	}
	s.Positive(displaced)
	s.Contains(r.im.RandomizedItems(), sym("Claw_(1)"))
}

func (s *ManagerTestSuite) TestCursedFiller() {
	settings := testutils.DefaultSettings(6, allPools...)
	settings.Cursed = true
	r := s.generate(s.hallownest, 6, settings)

	placed := r.im.ItemLocations()
	s.NotContains(placed, sym("Charm_Strike"))
	s.NotContains(placed, sym("Geo_A"))
	s.Contains(placed, sym("1_Geo_(0)"))
	s.Len(placed, len(r.im.RandomizedItems()))
}

func (s *ManagerTestSuite) TestCursedRerollKeepsEveryItem() {
	settings := testutils.DefaultSettings(0, allPools...)
	settings.Cursed = true

	for seed := int64(0); seed < 10; seed++ {
		r := s.newRun(s.hallownest, rng.New(seed), settings)
		r.im.FirstPass()
		r.im.SecondPass()

		placed := r.im.ItemLocations()
		s.Len(placed, len(r.im.RandomizedItems()), "seed %d", seed)
		for _, item := range r.im.RandomizedItems() {
			s.Contains(placed, item, "seed %d", seed)
		}
	}
}

func (s *ManagerTestSuite) TestMultiworldSharesOnePool() {
	r := s.generate(s.hallownest, 31,
		testutils.DefaultSettings(31, allPools...),
		testutils.DefaultSettings(0, allPools...),
	)

	crossed := 0
	for loc, item := range r.im.NonShopItems() {
		if loc.Player != item.Player {
			crossed++
		}
	}
	s.Positive(crossed, "items travel between worlds")
	s.Len(r.im.ItemLocations(), len(r.im.RandomizedItems()))
}
