package rando

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Placement is one item at one location
type Placement struct {
	Item     Symbol `json:"item"`
	Location Symbol `json:"location"`
}

// Result is the committed outcome of a generation run, one per player.
// It is built once at the end of a successful attempt and never mutated.
type Result struct {
	RandoID              string            `json:"rando_id"`
	PlayerID             int               `json:"player_id"`
	Players              int               `json:"players"`
	Seed                 int64             `json:"seed"`
	Attempts             int               `json:"attempts"`
	Settings             Settings          `json:"settings"`
	StartName            string            `json:"start_name"`
	StartItems           []string          `json:"start_items"`
	ItemPlacements       map[Symbol]Symbol `json:"item_placements"`
	LocationOrder        map[Symbol]int    `json:"location_order"`
	TransitionPlacements map[string]string `json:"transition_placements"`
	ShopCosts            map[Symbol]int    `json:"shop_costs"`
	VariableCosts        map[Symbol]int    `json:"variable_costs"`
	Nicknames            []string          `json:"nicknames"`
	Spoiler              string            `json:"spoiler,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

// ItemAt returns the item placed at a non-shop location
func (r *Result) ItemAt(location Symbol) (Symbol, bool) {
	for item, loc := range r.ItemPlacements {
		if loc == location {
			return item, true
		}
	}
	return Symbol{}, false
}

// ItemsAt returns every item placed at the location, sorted by location
// order then name. Shops can hold several.
func (r *Result) ItemsAt(location Symbol) []Symbol {
	var items []Symbol
	for item, loc := range r.ItemPlacements {
		if loc == location {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, CompareSymbols)
	return items
}

// Placements returns every placement sorted by location order, then by
// location and item name
func (r *Result) Placements() []Placement {
	out := make([]Placement, 0, len(r.ItemPlacements))
	for item, loc := range r.ItemPlacements {
		out = append(out, Placement{Item: item, Location: loc})
	}
	slices.SortFunc(out, func(a, b Placement) int {
		if c := cmp.Compare(r.LocationOrder[a.Location], r.LocationOrder[b.Location]); c != 0 {
			return c
		}
		if c := CompareSymbols(a.Location, b.Location); c != 0 {
			return c
		}
		return CompareSymbols(a.Item, b.Item)
	})
	return out
}

// Nickname returns the display name of a player, falling back to its
// number
func (r *Result) Nickname(player int) string {
	if player >= 0 && player < len(r.Nicknames) && r.Nicknames[player] != "" {
		return r.Nicknames[player]
	}
	return fmt.Sprintf("Player %d", player+1)
}

// CompareSymbols orders symbols by player then name
func CompareSymbols(a, b Symbol) int {
	if c := cmp.Compare(a.Player, b.Player); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}
