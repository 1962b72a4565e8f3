package transitions

import (
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/items"
	"github.com/KirkDiggler/rpg-rando/internal/engine/progression"
	"github.com/KirkDiggler/rpg-rando/internal/engine/vanilla"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

// Rounds without a new pair CompleteTransitionGraph tolerates
const completeFailsafe = 120

// Config selects the player whose transitions are shuffled
type Config struct {
	Attempt *attempt.Context
	Player  int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Attempt == nil {
		vb.RequiredField("Attempt")
	} else if c.Player < 0 || c.Player >= c.Attempt.Players() {
		vb.Field("Player", "out of range")
	}

	return vb.Build()
}

// Builder runs the transition stages for one player
type Builder struct {
	ctx      *attempt.Context
	world    *logic.Database
	rand     *rng.Source
	player   int
	settings *rando.Settings
	start    string

	tm *Manager
	pm *progression.Manager
	im *items.Manager
}

// New checks the player's transition mode and collects the transitions in
// play
func New(cfg *Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ctx := cfg.Attempt
	settings := &ctx.Settings[cfg.Player]
	switch {
	case settings.RandomizeAreas && settings.RandomizeRooms:
		return nil, errors.FailedPrecondition("areas and rooms cannot both be randomized")
	case !settings.RandomizeTransitions():
		return nil, errors.FailedPrecondition("transitions are not randomized")
	}

	return &Builder{
		ctx:      ctx,
		world:    ctx.World,
		rand:     ctx.Rand,
		player:   cfg.Player,
		settings: settings,
		start:    ctx.StartTransition(cfg.Player),
		tm:       NewManager(ctx, cfg.Player),
	}, nil
}

// Manager exposes the placement state
func (b *Builder) Manager() *Manager {
	return b.tm
}

// Run places every transition of the player or returns a backtrack error
func (b *Builder) Run() error {
	if err := b.PlaceOneWays(); err != nil {
		return err
	}

	var err error
	switch {
	case b.settings.RandomizeAreas:
		err = b.BuildAreaTree()
	case b.settings.ConnectAreas:
		err = b.BuildConnectedAreaRoomTree()
	default:
		err = b.BuildRoomTree()
	}
	if err != nil {
		return err
	}

	if err := b.PlaceIsolated(); err != nil {
		return err
	}
	if err := b.stage(); err != nil {
		return err
	}
	if err := b.ConnectStartToGraph(); err != nil {
		return err
	}
	if err := b.CompleteTransitionGraph(); err != nil {
		return err
	}

	return b.Validate()
}

// PlaceOneWays pairs every one-way entrance with an exit. Horizontal
// entrances take any exit; drops take a compatible one.
func (b *Builder) PlaceOneWays() error {
	exits := slices.Clone(b.tm.exits)
	var drops []string
	for _, entrance := range slices.Clone(b.tm.entrances) {
		if !b.world.Direction(entrance).Horizontal() {
			drops = append(drops, entrance)
			continue
		}
		if len(exits) == 0 {
			return errors.Backtrackf("no one-way exit left for %s", entrance)
		}

		var exit string
		exit, exits = rng.Take(b.rand, exits)
		b.tm.PlaceOneWayPair(entrance, exit)
	}

	directed := NewDirected(b.world, b.rand)
	directed.Add(exits...)
	for len(drops) > 0 {
		var entrance string
		entrance, drops = rng.Take(b.rand, drops)
		exit, ok := directed.Next(entrance, false)
		if !ok {
			return errors.Backtrackf("no compatible one-way exit for %s", entrance)
		}
		b.tm.PlaceOneWayPair(entrance, exit)
		directed.Remove(exit)
	}
	return nil
}

// PlaceIsolated fixes each isolated transition to a random non-isolated
// partner, kept in standby until one side is reachable
func (b *Builder) PlaceIsolated() error {
	var isolated, others []string
	for _, name := range b.tm.Unplaced() {
		if name == b.start {
			continue
		}
		if t, _ := b.world.Transition(name); t.Isolated {
			isolated = append(isolated, name)
		} else {
			others = append(others, name)
		}
	}

	directed := NewDirected(b.world, b.rand)
	directed.Add(others...)
	for len(isolated) > 0 {
		var t1 string
		t1, isolated = rng.Take(b.rand, isolated)
		t2, ok := directed.Next(t1, b.settings.ConnectAreas)
		if !ok {
			return errors.Backtrackf("ran out of non-isolated transitions for %s", t1)
		}
		b.tm.PlaceStandbyPair(t1, t2)
		directed.Remove(t2)
	}
	return nil
}

// stage builds the throwaway progression state and item manager used to
// measure reachability while the graph is completed
func (b *Builder) stage() error {
	b.pm = progression.New(b.ctx)
	b.tm.Track(b.pm)

	im, err := items.New(&items.Config{
		Attempt:     b.ctx,
		Progression: b.pm,
		Vanilla:     vanilla.New(b.ctx),
		Players:     []int{b.player},
	})
	if err != nil {
		return errors.Wrap(err, "failed to stage item manager")
	}
	b.im = im
	return nil
}

func (b *Builder) place(t1, t2 string) {
	b.tm.PlacePair(t1, t2)
	b.im.Refresh()
}

// ForceTransition looks for a reachable candidate and an unreachable
// compatible partner whose pairing opens a new location or a new unplaced
// transition
func (b *Builder) ForceTransition(candidates []string) (string, string, bool) {
	pool := b.tm.Directed()
	for _, t1 := range rng.Shuffle(b.rand, candidates) {
		for _, t2 := range pool.Partners(t1) {
			if b.tm.Reachable(t2) {
				continue
			}
			if b.opens(t2) {
				return t1, t2, true
			}
		}
	}
	return "", "", false
}

func (b *Builder) opens(partner string) bool {
	b.pm.AddTemp(rando.NewSymbol(b.player, partner))
	defer b.pm.RemoveTempItems()

	if b.im.Probe() {
		return true
	}
	for _, sym := range b.pm.TempItems() {
		if sym.Name != partner && b.tm.IsUnplaced(sym.Name) {
			return true
		}
	}
	return false
}

// ConnectStartToGraph forces doors out of the start until the player can
// place an item or reach core movement. The start takes any compatible
// partner when none opens new ground.
func (b *Builder) ConnectStartToGraph() error {
	if b.tm.IsUnplaced(b.start) {
		_, t2, ok := b.ForceTransition([]string{b.start})
		if !ok {
			t2, ok = b.tm.Directed().Next(b.start, false)
		}
		if !ok {
			return errors.Backtrackf("no way out of start transition %s", b.start)
		}
		b.place(b.start, t2)
	}

	for {
		if b.connected() {
			return nil
		}

		b.unloadReachableStandby()
		placeable := slices.DeleteFunc(slices.Clone(b.tm.Unplaced()), func(t string) bool {
			return !b.tm.Reachable(t)
		})
		if len(placeable) == 0 {
			return errors.Backtrack("could not connect start to the map: no placeable transitions")
		}

		t1, t2, ok := b.ForceTransition(placeable)
		if !ok {
			return errors.Backtrack("could not connect start to the map: no progression transitions")
		}
		b.place(t1, t2)
	}
}

// connected reports whether the start region is large enough to build on
func (b *Builder) connected() bool {
	world := b.world.Def()
	if world.SkillPool != "" && b.ctx.Randomizes(b.player, world.SkillPool) {
		_, ok := b.im.FindNextLocation()
		return ok
	}

	for _, name := range world.CoreMovement {
		item, ok := b.world.Item(name)
		if !ok || item.Vanilla == "" {
			continue
		}
		if b.pm.CanGet(rando.NewSymbol(b.player, item.Vanilla)) {
			return true
		}
	}
	return false
}

func (b *Builder) unloadReachableStandby() {
	if b.tm.UnloadReachableStandby() {
		b.im.Refresh()
	}
}

// CompleteTransitionGraph pairs the remaining transitions, guessing
// progression items into reachable locations as it goes
func (b *Builder) CompleteTransitionGraph() error {
	stalled := 0
	for len(b.tm.Unplaced()) > 0 {
		if stalled > completeFailsafe {
			slog.Warn("aborted transition placement on too many rounds",
				"player", b.player,
				"unplaced", len(b.tm.Unplaced()),
				"placeable", len(b.tm.Placeable()),
				"available_locations", b.im.AvailableCount())
			return errors.Backtrackf("transition placement stalled with %d unplaced", len(b.tm.Unplaced()))
		}
		stalled++

		if b.im.CanGuess() && b.im.AvailableCount() > 1 {
			if loc, ok := b.im.FindNextLocation(); ok {
				b.im.PlaceItem(b.im.GuessItem(), loc)
			}
		}

		b.unloadReachableStandby()
		placeable := len(b.tm.Placeable())
		switch {
		case placeable == 0 && b.im.AvailableCount() == 0:
			return errors.Backtrack("ran out of reachable transitions and locations")
		case placeable > 2:
			t1 := b.tm.NextTransition()
			t2, _ := b.tm.Directed().Next(t1, false)
			b.place(t1, t2)
			stalled = 0
			continue
		case len(b.tm.Unplaced()) == 2:
			b.place(b.tm.Unplaced()[0], b.tm.Unplaced()[1])
			stalled = 0
			continue
		case placeable > 0:
			if t1, t2, ok := b.ForceTransition(b.tm.Placeable()); ok {
				b.place(t1, t2)
				stalled = 0
				continue
			}
		}

		b.unlockHeuristic()
	}

	b.tm.UnloadStandby()
	return nil
}

// unlockHeuristic places the first configured unlock item the player is
// missing, the last resort when no transition can be forced
func (b *Builder) unlockHeuristic() {
	loc, ok := b.im.FindNextLocation()
	if !ok {
		return
	}
	for _, name := range b.world.Def().UnlockHeuristic {
		item := rando.NewSymbol(b.player, name)
		if !b.pm.Has(item) && b.im.IsUnplacedProgression(item) {
			b.im.PlaceItem(item, loc)
			return
		}
	}
}

// Validate walks the finished graph with every progression item and
// requires every shuffled transition to be reached
func (b *Builder) Validate() error {
	pm := progression.New(b.ctx)
	pm.Mute()
	for _, name := range b.ctx.StartProgression[b.player] {
		pm.Add(rando.NewSymbol(b.player, name))
	}
	for _, item := range b.world.Items() {
		if item.Progression {
			pm.Add(rando.NewSymbol(b.player, item.Name))
		}
	}
	pm.Walk(b.player, b.ctx.Transitions[b.player])

	var missing []string
	for _, name := range b.tm.InPlay() {
		if !pm.Has(rando.NewSymbol(b.player, name)) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slog.Warn("transition placements failed to validate", "player", b.player, "missing", missing)
		return errors.Backtrackf("%d transitions unreachable", len(missing)).WithMeta("transitions", missing)
	}
	return nil
}
