// Package transitions shuffles the door graph of one player into a
// connected graph the item engine can later fill
package transitions

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/progression"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

type pair struct {
	first, second string
}

// Manager tracks which transitions of a player are unplaced, parked in
// standby or placed. Placements are written straight into the attempt
// context.
type Manager struct {
	ctx    *attempt.Context
	world  *logic.Database
	rand   *rng.Source
	player int
	pm     *progression.Manager

	inPlay    []string
	inPlaySet mapset.Set[string]
	entrances []string
	exits     []string
	unplaced  []string
	standby   []pair
}

// NewManager collects the transitions the player's mode shuffles and clears
// their vanilla targets
func NewManager(ctx *attempt.Context, player int) *Manager {
	m := &Manager{
		ctx:       ctx,
		world:     ctx.World,
		rand:      ctx.Rand,
		player:    player,
		inPlaySet: mapset.New[string](),
	}

	rooms := ctx.Settings[player].RandomizeRooms
	for _, t := range m.world.Transitions() {
		if !rooms && !t.AreaBoundary {
			continue
		}
		m.inPlay = append(m.inPlay, t.Name)
		m.inPlaySet.Put(t.Name)
		delete(ctx.Transitions[player], t.Name)

		switch t.OneWay {
		case rando.OneWayEntrance:
			m.entrances = append(m.entrances, t.Name)
		case rando.OneWayExit:
			m.exits = append(m.exits, t.Name)
		default:
			m.unplaced = append(m.unplaced, t.Name)
		}
	}
	return m
}

// Track lets placements notify the progression state of held transitions
func (m *Manager) Track(pm *progression.Manager) {
	m.pm = pm
}

// InPlay lists every transition the player's mode shuffles
func (m *Manager) InPlay() []string {
	return m.inPlay
}

// IsInPlay reports whether the transition is shuffled
func (m *Manager) IsInPlay(name string) bool {
	return m.inPlaySet.Has(name)
}

// Unplaced lists the two-way transitions still waiting for a partner
func (m *Manager) Unplaced() []string {
	return m.unplaced
}

// IsUnplaced reports whether the transition waits for a partner
func (m *Manager) IsUnplaced(name string) bool {
	return slices.Contains(m.unplaced, name)
}

// Standby lists transitions parked with a fixed partner
func (m *Manager) Standby() []string {
	var out []string
	for _, p := range m.standby {
		out = append(out, p.first, p.second)
	}
	return out
}

// Reachable reports whether the tracked progression state holds the
// transition
func (m *Manager) Reachable(name string) bool {
	return m.pm != nil && m.pm.Has(m.symbol(name))
}

func (m *Manager) symbol(name string) rando.Symbol {
	return rando.NewSymbol(m.player, name)
}

// PlacePair connects two transitions both ways. A side the player can
// already reach is renotified so its new target is followed.
func (m *Manager) PlacePair(t1, t2 string) {
	m.ctx.Transitions[m.player][t1] = t2
	m.ctx.Transitions[m.player][t2] = t1
	m.ctx.RandomizedTransitions[m.player] = append(m.ctx.RandomizedTransitions[m.player], t1, t2)
	m.unplaced = slices.DeleteFunc(m.unplaced, func(t string) bool { return t == t1 || t == t2 })

	m.notifyHeld(t1)
	m.notifyHeld(t2)
}

// PlaceOneWayPair connects an entrance to an exit in one direction only
func (m *Manager) PlaceOneWayPair(entrance, exit string) {
	m.ctx.Transitions[m.player][entrance] = exit
	m.ctx.RandomizedTransitions[m.player] = append(m.ctx.RandomizedTransitions[m.player], entrance, exit)
	m.entrances = slices.DeleteFunc(m.entrances, func(t string) bool { return t == entrance })
	m.exits = slices.DeleteFunc(m.exits, func(t string) bool { return t == exit })

	m.notifyHeld(entrance)
}

func (m *Manager) notifyHeld(name string) {
	if m.Reachable(name) {
		m.ctx.Notify(m.symbol(name))
	}
}

// PlaceStandbyPair fixes two transitions together without placing them
func (m *Manager) PlaceStandbyPair(t1, t2 string) {
	m.standby = append(m.standby, pair{first: t1, second: t2})
	m.unplaced = slices.DeleteFunc(m.unplaced, func(t string) bool { return t == t1 || t == t2 })
}

// UnloadReachableStandby places every standby pair with a reachable side
func (m *Manager) UnloadReachableStandby() bool {
	placed := false
	kept := m.standby[:0]
	var ready []pair
	for _, p := range m.standby {
		if m.Reachable(p.first) || m.Reachable(p.second) {
			ready = append(ready, p)
			continue
		}
		kept = append(kept, p)
	}
	m.standby = kept
	for _, p := range ready {
		m.PlacePair(p.first, p.second)
		placed = true
	}
	return placed
}

// UnloadStandby places every standby pair
func (m *Manager) UnloadStandby() {
	ready := m.standby
	m.standby = nil
	for _, p := range ready {
		m.PlacePair(p.first, p.second)
	}
}

// Directed returns a fresh directed pool over the unplaced transitions
func (m *Manager) Directed() *Directed {
	d := NewDirected(m.world, m.rand)
	d.Add(m.unplaced...)
	return d
}

// Placeable lists reachable unplaced transitions that still have a
// compatible unplaced partner
func (m *Manager) Placeable() []string {
	d := m.Directed()
	var out []string
	for _, t := range m.unplaced {
		if m.Reachable(t) && d.Test(t) {
			out = append(out, t)
		}
	}
	return out
}

// NextTransition picks a placeable transition from the direction with the
// fewest placeable transitions, so scarce doors are spent first. Placeable
// must not be empty.
func (m *Manager) NextTransition() string {
	placeable := NewDirected(m.world, m.rand)
	placeable.Add(m.Placeable()...)

	best := logic.Direction(-1)
	for _, dir := range logic.Directions {
		n := len(placeable.byDir[dir])
		if n == 0 {
			continue
		}
		if best < 0 || n < len(placeable.byDir[best]) {
			best = dir
		}
	}
	return placeable.Pick(best)
}
