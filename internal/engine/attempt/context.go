// Package attempt holds the mutable state shared by every stage of a single
// generation attempt. A Context is created by the orchestrator, handed to
// each stage and dropped when the attempt ends.
package attempt

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

// Config holds what an attempt needs from the orchestrator
type Config struct {
	World    *logic.Database
	Rand     *rng.Source
	Settings []rando.Settings
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.World == nil {
		vb.RequiredField("World")
	}
	if c.Rand == nil {
		vb.RequiredField("Rand")
	}
	if len(c.Settings) == 0 {
		vb.Field("Settings", "must hold at least one player")
	}

	return vb.Build()
}

// Context is the attempt scoped state container
type Context struct {
	World    *logic.Database
	Rand     *rng.Source
	Settings []rando.Settings

	// Per player, filled by pre-randomization
	Costs            []map[string]int
	StartNames       []string
	StartItems       [][]string
	StartProgression [][]string

	// Per player transition targets. Seeded with the vanilla map and
	// overwritten by the transition builder for randomized transitions.
	Transitions []map[string]string

	// Per player transitions the builder shuffled, in placement order
	RandomizedTransitions [][]string

	recent    []rando.Symbol
	recentSet mapset.Set[rando.Symbol]
}

// New creates an empty attempt context
func New(cfg *Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	players := len(cfg.Settings)
	ctx := &Context{
		World:            cfg.World,
		Rand:             cfg.Rand,
		Settings:         cfg.Settings,
		Costs:            make([]map[string]int, players),
		StartNames:       make([]string, players),
		StartItems:       make([][]string, players),
		StartProgression: make([][]string, players),
		Transitions:      make([]map[string]string, players),
		recentSet:        mapset.New[rando.Symbol](),

		RandomizedTransitions: make([][]string, players),
	}
	for p := range players {
		ctx.Costs[p] = make(map[string]int)
		ctx.Transitions[p] = cfg.World.VanillaTransitions()
	}

	return ctx, nil
}

// Players is the number of players in the run
func (c *Context) Players() int {
	return len(c.Settings)
}

// Randomizes reports whether the player shuffles the pool
func (c *Context) Randomizes(player int, pool string) bool {
	return c.Settings[player].Randomizes(pool)
}

// StartTransition is the transition a player's start location attaches to
// in the player's transition mode
func (c *Context) StartTransition(player int) string {
	start, ok := c.World.Start(c.StartNames[player])
	if !ok {
		return ""
	}
	if c.Settings[player].RandomizeRooms || start.AreaTransition == "" {
		return start.RoomTransition
	}
	return start.AreaTransition
}

// Notify records progression obtained since the last drain. Repeats are
// ignored until drained.
func (c *Context) Notify(sym rando.Symbol) {
	if c.recentSet.Has(sym) {
		return
	}
	c.recentSet.Put(sym)
	c.recent = append(c.recent, sym)
}

// DrainRecent returns the progression recorded since the last drain in
// the order it was obtained
func (c *Context) DrainRecent() []rando.Symbol {
	out := c.recent
	c.recent = nil
	c.recentSet = mapset.New[rando.Symbol]()
	return out
}

// HasRecent reports whether undrained progression is waiting
func (c *Context) HasRecent() bool {
	return len(c.recent) > 0
}
