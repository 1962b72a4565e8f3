// Package prerando resolves the per player decisions made before any item
// is placed: variable costs, start items and the start location
package prerando

import (
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

// Run resolves every player in player order
func Run(ctx *attempt.Context) error {
	for p := range ctx.Players() {
		if err := RandomizeCosts(ctx, p); err != nil {
			return errors.Wrapf(err, "player %d", p+1)
		}
		RandomizeStartItems(ctx, p)
		if err := RandomizeStartLocation(ctx, p); err != nil {
			return errors.Wrapf(err, "player %d", p+1)
		}
	}
	return nil
}

// RandomizeCosts rolls a grub or essence cost for every cost gated
// location in a randomized pool. Other locations keep their listed cost.
func RandomizeCosts(ctx *attempt.Context, player int) error {
	world := ctx.World.Def()
	for _, loc := range ctx.World.Locations() {
		if !ctx.Randomizes(player, loc.Pool) {
			continue
		}

		var size int
		switch loc.CostType {
		case rando.CostTypeGrub:
			size = world.MaxGrubCost
		case rando.CostTypeEssence:
			size = world.MaxEssenceCost
		default:
			continue
		}

		cost, err := ctx.Rand.Roll(size)
		if err != nil {
			return errors.Wrapf(err, "failed to roll cost of %s", loc.Name)
		}
		ctx.Costs[player][loc.Name] = cost
	}
	return nil
}

// RandomizeStartItems draws each configured tier in order. Progression
// among the drawn items becomes start progression.
func RandomizeStartItems(ctx *attempt.Context, player int) {
	if !ctx.Settings[player].RandomizeStartItems {
		return
	}

	var chosen []string
	for _, tier := range ctx.World.Def().StartItems {
		candidates := tierCandidates(ctx, tier, chosen)
		n := tier.Min
		if tier.Max > tier.Min {
			n += ctx.Rand.Next(tier.Max - tier.Min + 1)
		}
		if tier.Cap > 0 {
			n = min(n, tier.Cap-len(chosen))
		}
		n = min(n, len(candidates))

		for range n {
			var item string
			item, candidates = rng.Take(ctx.Rand, candidates)
			chosen = append(chosen, item)
		}
	}

	ctx.StartItems[player] = chosen
	for _, name := range chosen {
		if ctx.World.IsProgression(name) {
			ctx.StartProgression[player] = append(ctx.StartProgression[player], name)
		}
	}
	slog.Debug("start items drawn", "player", player, "items", chosen)
}

func tierCandidates(ctx *attempt.Context, tier rando.StartItemTier, chosen []string) []string {
	var out []string
	add := func(name string) {
		if !slices.Contains(chosen, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	if tier.Action == "" {
		for _, name := range tier.Items {
			add(name)
		}
		return out
	}
	for _, item := range ctx.World.Items() {
		if item.Action == tier.Action {
			add(item.Name)
		}
	}
	return out
}

// RandomizeStartLocation picks the start and adds what it grants to start
// progression: its waypoint unless rooms are shuffled, and the transition
// the player enters the map through. The transition is granted even when
// transitions keep their vanilla targets so the map can be walked.
func RandomizeStartLocation(ctx *attempt.Context, player int) error {
	world := ctx.World
	settings := &ctx.Settings[player]
	if len(world.Starts()) == 0 {
		return nil
	}

	name := world.Def().DefaultStart
	switch {
	case settings.RandomizeStartLocation:
		var safe []string
		for _, start := range world.Starts() {
			if start.Name != world.Def().DefaultStart && safeStart(settings, &start) {
				safe = append(safe, start.Name)
			}
		}
		if len(safe) == 0 {
			return errors.FailedPrecondition("no safe start location for these settings")
		}
		name = rng.Pick(ctx.Rand, safe)
	case settings.StartName != "":
		if _, ok := world.Start(settings.StartName); ok {
			name = settings.StartName
		} else {
			slog.Warn("unknown start location, using the default", "start", settings.StartName, "default", name)
		}
	}

	start, ok := world.Start(name)
	ctx.StartNames[player] = name

	if ok && !settings.RandomizeRooms && start.Waypoint != "" {
		ctx.StartProgression[player] = append(ctx.StartProgression[player], start.Waypoint)
	}
	if t := ctx.StartTransition(player); t != "" {
		ctx.StartProgression[player] = append(ctx.StartProgression[player], t)
	}
	return nil
}

func safeStart(settings *rando.Settings, start *rando.StartDef) bool {
	switch {
	case settings.RandomizeStartItems:
		return true
	case settings.RandomizeRooms:
		return start.RoomSafe
	case settings.RandomizeAreas:
		return start.AreaSafe
	}
	return start.ItemSafe
}
