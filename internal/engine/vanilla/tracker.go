// Package vanilla tracks progression items that stay at their default
// location because their pool is not randomized
package vanilla

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
)

// Progression is the part of the progression state the tracker feeds
type Progression interface {
	Add(sym rando.Symbol)
}

// Tracker folds vanilla progression into a progression state once its
// location is reached. One tracker serves one progression state.
type Tracker struct {
	locations []rando.Symbol
	itemsAt   map[rando.Symbol][]rando.Symbol
	obtained  mapset.Set[rando.Symbol]
}

// New collects every player's vanilla progression locations
func New(ctx *attempt.Context) *Tracker {
	t := &Tracker{
		itemsAt:  make(map[rando.Symbol][]rando.Symbol),
		obtained: mapset.New[rando.Symbol](),
	}

	for p := range ctx.Players() {
		for _, item := range ctx.World.Items() {
			if !item.Progression || item.Vanilla == "" || ctx.Randomizes(p, item.Pool) {
				continue
			}
			loc := rando.NewSymbol(p, item.Vanilla)
			if _, ok := t.itemsAt[loc]; !ok {
				t.locations = append(t.locations, loc)
			}
			t.itemsAt[loc] = append(t.itemsAt[loc], rando.NewSymbol(p, item.Name))
		}
	}

	return t
}

// Locations lists the vanilla progression locations in definition order
func (t *Tracker) Locations() []rando.Symbol {
	return t.locations
}

// IsProgressionLocation reports whether a vanilla progression item sits at
// the location
func (t *Tracker) IsProgressionLocation(loc rando.Symbol) bool {
	_, ok := t.itemsAt[loc]
	return ok
}

// ItemsAt lists the vanilla progression items at a location
func (t *Tracker) ItemsAt(loc rando.Symbol) []rando.Symbol {
	return t.itemsAt[loc]
}

// Obtain adds the location's vanilla progression the first time it is
// called for that location and returns what was added
func (t *Tracker) Obtain(loc rando.Symbol, pm Progression) []rando.Symbol {
	items, ok := t.itemsAt[loc]
	if !ok || t.obtained.Has(loc) {
		return nil
	}
	t.obtained.Put(loc)
	for _, item := range items {
		pm.Add(item)
	}
	return items
}

// Obtained reports whether the location was already folded in
func (t *Tracker) Obtained(loc rando.Symbol) bool {
	return t.obtained.Has(loc)
}
