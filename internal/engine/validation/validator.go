// Package validation replays committed placements from a fresh progression
// state and confirms every randomized location, item and transition can be
// obtained
package validation

import (
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/progression"
	"github.com/KirkDiggler/rpg-rando/internal/engine/vanilla"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

// MaxPasses bounds the closure sweep
const MaxPasses = 400

// Placements is the committed output of the item engine
type Placements interface {
	NonShopItems() map[rando.Symbol]rando.Symbol
	ShopItems() map[rando.Symbol][]rando.Symbol
	Shops() []rando.Symbol
	RandomizedLocations() []rando.Symbol
	RandomizedItems() []rando.Symbol
	NormalFillShops() bool
}

type closure struct {
	ctx        *attempt.Context
	placements Placements
	pm         *progression.Manager
	vm         *vanilla.Tracker

	locations   []rando.Symbol
	items       mapset.Set[rando.Symbol]
	transitions []rando.Symbol
}

// Validate returns a backtrack error when the placements leave a location
// unfilled, place an item twice or cannot be completed from the start
func Validate(ctx *attempt.Context, placements Placements) error {
	if err := checkFilled(placements); err != nil {
		return err
	}
	if err := checkDuplicates(placements); err != nil {
		return err
	}

	c := newClosure(ctx, placements)
	return c.run()
}

func checkFilled(placements Placements) error {
	shops := mapset.New[rando.Symbol]()
	for _, shop := range placements.Shops() {
		shops.Put(shop)
	}
	for _, loc := range placements.RandomizedLocations() {
		if shops.Has(loc) {
			if placements.NormalFillShops() && len(placements.ShopItems()[loc]) == 0 {
				return errors.Backtrackf("shop %s was left empty", loc)
			}
			continue
		}
		if _, ok := placements.NonShopItems()[loc]; !ok {
			return errors.Backtrackf("location %s was left unfilled", loc)
		}
	}
	return nil
}

func checkDuplicates(placements Placements) error {
	seen := mapset.New[rando.Symbol]()
	check := func(item rando.Symbol) error {
		if seen.Has(item) {
			return errors.Backtrackf("item %s was placed twice", item)
		}
		seen.Put(item)
		return nil
	}

	for _, loc := range placements.RandomizedLocations() {
		if item, ok := placements.NonShopItems()[loc]; ok {
			if err := check(item); err != nil {
				return err
			}
		}
	}
	for _, shop := range placements.Shops() {
		for _, item := range placements.ShopItems()[shop] {
			if err := check(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func newClosure(ctx *attempt.Context, placements Placements) *closure {
	c := &closure{
		ctx:        ctx,
		placements: placements,
		pm:         progression.New(ctx),
		vm:         vanilla.New(ctx),
		items:      mapset.New[rando.Symbol](),
	}
	c.pm.Mute()

	for p := range ctx.Players() {
		for _, name := range ctx.StartProgression[p] {
			c.pm.Add(rando.NewSymbol(p, name))
		}
		for _, name := range ctx.RandomizedTransitions[p] {
			c.transitions = append(c.transitions, rando.NewSymbol(p, name))
		}
	}

	seen := mapset.New[rando.Symbol]()
	for _, loc := range append(append([]rando.Symbol(nil), placements.RandomizedLocations()...), c.vm.Locations()...) {
		if !seen.Has(loc) {
			seen.Put(loc)
			c.locations = append(c.locations, loc)
		}
	}
	for _, item := range placements.RandomizedItems() {
		c.items.Put(item)
	}

	for _, loc := range placements.RandomizedLocations() {
		if item, ok := placements.NonShopItems()[loc]; ok {
			c.trackCounters(item, loc)
		}
	}
	for _, shop := range placements.Shops() {
		for _, item := range placements.ShopItems()[shop] {
			c.trackCounters(item, shop)
		}
	}

	return c
}

func (c *closure) trackCounters(item, loc rando.Symbol) {
	def, ok := c.ctx.World.Item(item.Name)
	if !ok {
		return
	}
	world := c.ctx.World.Def()
	switch {
	case world.GrubPool != "" && def.Pool == world.GrubPool:
		c.pm.AddGrubLocation(item.Player, loc)
	case world.EssencePool != "" && def.Pool == world.EssencePool:
		c.pm.AddEssenceLocation(item.Player, loc, def.Essence)
	}
}

func (c *closure) run() error {
	for pass := 1; ; pass++ {
		if pass > MaxPasses {
			return c.fail("validation exceeded the pass limit")
		}

		progress := c.walk()

		var remaining []rando.Symbol
		for _, loc := range c.locations {
			if !c.pm.CanGet(loc) {
				remaining = append(remaining, loc)
				continue
			}
			c.obtain(loc)
			progress = true
		}
		c.locations = remaining

		if len(c.locations) == 0 && c.items.Size() == 0 && len(c.transitions) == 0 {
			return nil
		}
		if !progress {
			return c.fail("validation reached a fixed point with unobtained entries")
		}
	}
}

// walk opens transitions for every player and drops obtained ones from
// the randomized transition list
func (c *closure) walk() bool {
	for p := range c.ctx.Players() {
		c.pm.Walk(p, c.ctx.Transitions[p])
	}

	progress := false
	var remaining []rando.Symbol
	for _, t := range c.transitions {
		if c.pm.Has(t) {
			progress = true
			continue
		}
		remaining = append(remaining, t)
	}
	c.transitions = remaining
	return progress
}

func (c *closure) obtain(loc rando.Symbol) {
	c.vm.Obtain(loc, c.pm)

	if item, ok := c.placements.NonShopItems()[loc]; ok {
		c.collect(item)
	}
	for _, item := range c.placements.ShopItems()[loc] {
		c.collect(item)
	}
}

func (c *closure) collect(item rando.Symbol) {
	c.items.Remove(item)
	if c.ctx.World.IsProgression(item.Name) {
		c.pm.Add(item)
	}
}

func (c *closure) fail(message string) error {
	missing := make([]string, 0, len(c.locations))
	for _, loc := range c.locations {
		missing = append(missing, loc.String())
	}
	slog.Warn(message,
		"locations", len(c.locations),
		"items", c.items.Size(),
		"transitions", len(c.transitions))

	return errors.Backtrack(message).
		WithMeta("unobtained_locations", missing).
		WithMeta("unobtained_items", c.items.Size()).
		WithMeta("unobtained_transitions", len(c.transitions))
}
