package transitions

import (
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

// Groups in a row BuildSpanningTree may fail to attach before the attempt
// backtracks
const spanningTreeFailsafe = 500

// groups keeps transition lists keyed by group name in first-seen order
type groups struct {
	keys    []string
	members map[string][]string
}

func newGroups() *groups {
	return &groups{members: make(map[string][]string)}
}

func (g *groups) open(key string) {
	if _, ok := g.members[key]; ok {
		return
	}
	g.keys = append(g.keys, key)
	g.members[key] = nil
}

func (g *groups) has(key string) bool {
	_, ok := g.members[key]
	return ok
}

func (g *groups) add(key, name string) {
	g.members[key] = append(g.members[key], name)
}

// groupTransitions opens a group for every key holding a transition that
// is neither a dead end nor isolated, then files every two-way transition
// into its open group
func (b *Builder) groupTransitions(names []string, key func(*rando.TransitionDef) string) *groups {
	g := newGroups()
	for _, name := range names {
		t, _ := b.world.Transition(name)
		if !t.DeadEnd && !t.Isolated {
			g.open(key(t))
		}
	}
	for _, name := range names {
		t, _ := b.world.Transition(name)
		if t.OneWay == rando.OneWayNone && g.has(key(t)) {
			g.add(key(t), name)
		}
	}
	return g
}

// treeCandidates is every unplaced transition except the start
func (b *Builder) treeCandidates() []string {
	return slices.DeleteFunc(slices.Clone(b.tm.Unplaced()), func(t string) bool {
		return t == b.start
	})
}

func (b *Builder) areaKey(t *rando.TransitionDef) string {
	return b.world.AreaGroup(t.Area)
}

func (b *Builder) roomKey(t *rando.TransitionDef) string {
	return b.world.RoomGroup(t.Scene)
}

// BuildAreaTree connects every area into one tree
func (b *Builder) BuildAreaTree() error {
	return b.BuildSpanningTree(b.groupTransitions(b.treeCandidates(), b.areaKey))
}

// BuildRoomTree connects every room into one tree
func (b *Builder) BuildRoomTree() error {
	return b.BuildSpanningTree(b.groupTransitions(b.treeCandidates(), b.roomKey))
}

// BuildConnectedAreaRoomTree connects the rooms of each area first and then
// the areas, so rooms of an area stay together
func (b *Builder) BuildConnectedAreaRoomTree() error {
	areas := newGroups()
	rooms := make(map[string]*groups)
	for _, name := range b.treeCandidates() {
		t, _ := b.world.Transition(name)
		if t.DeadEnd && t.Isolated {
			continue
		}
		area := b.areaKey(t)
		areas.open(area)
		if rooms[area] == nil {
			rooms[area] = newGroups()
		}
		rooms[area].open(b.roomKey(t))
	}

	for _, name := range b.treeCandidates() {
		t, _ := b.world.Transition(name)
		area := b.areaKey(t)
		if !areas.has(area) || !rooms[area].has(b.roomKey(t)) || t.OneWay != rando.OneWayNone {
			continue
		}
		rooms[area].add(b.roomKey(t), name)
	}
	for _, area := range areas.keys {
		if err := b.BuildSpanningTree(rooms[area]); err != nil {
			return err
		}
	}

	for _, name := range b.treeCandidates() {
		t, _ := b.world.Transition(name)
		area := b.areaKey(t)
		if areas.has(area) && rooms[area].has(b.roomKey(t)) && t.OneWay == rando.OneWayNone {
			areas.add(area, name)
		}
	}
	return b.BuildSpanningTree(areas)
}

func (b *Builder) nonIsolated(names []string) []string {
	var out []string
	for _, name := range names {
		if t, _ := b.world.Transition(name); !t.Isolated {
			out = append(out, name)
		}
	}
	return out
}

// BuildSpanningTree attaches groups one at a time to a growing set of
// components, then merges the components through compatible open doors
func (b *Builder) BuildSpanningTree(g *groups) error {
	var remaining []string
	for _, key := range g.keys {
		if len(b.nonIsolated(g.members[key])) > 0 {
			remaining = append(remaining, key)
		}
	}
	if len(remaining) == 0 {
		return nil
	}

	first, remaining := rng.Take(b.rand, remaining)
	directed := []*Directed{NewDirected(b.world, b.rand)}
	directed[0].Add(b.nonIsolated(g.members[first])...)

	stalled := 0
	for len(remaining) > 0 {
		if stalled > spanningTreeFailsafe || !directed[0].Any() {
			slog.Warn("spanning tree failsafe triggered",
				"stalled", stalled,
				"first", first,
				"first_count", len(g.members[first]))
			return errors.Backtrackf("spanning tree stalled from group %s", first)
		}

		i := b.rand.Next(len(remaining))
		next := remaining[i]
		remaining = slices.Delete(remaining, i, i+1)

		if b.attach(directed, g.members[next]) {
			stalled = 0
			continue
		}
		stalled++
		dt := NewDirected(b.world, b.rand)
		dt.Add(b.nonIsolated(g.members[next])...)
		directed = append(directed, dt)
	}

	b.mergeComponents(directed)
	return nil
}

// attach pairs a door of the group with an open door of the first
// component that can take it
func (b *Builder) attach(directed []*Directed, members []string) bool {
	for _, dt := range directed {
		var targets []string
		for _, name := range members {
			if t, _ := b.world.Transition(name); !t.DeadEnd && dt.Test(name) {
				targets = append(targets, name)
			}
		}
		if len(targets) == 0 {
			continue
		}

		target := rng.Pick(b.rand, targets)
		source, _ := dt.Next(target, false)
		b.tm.PlacePair(source, target)

		dt.Add(b.nonIsolated(members)...)
		dt.Remove(target, source)
		return true
	}
	return false
}

// mergeComponents joins components pairwise until no two of them share a
// compatible pair of open doors
func (b *Builder) mergeComponents(directed []*Directed) {
	for i := 0; i < len(directed); i++ {
		dt := directed[i]
		for j, other := range directed {
			if j == i {
				continue
			}
			t1, t2, ok := b.bridge(dt, other)
			if !ok {
				continue
			}

			b.tm.PlacePair(t1, t2)
			other.Add(dt.All()...)
			other.Remove(t1, t2)
			directed = slices.Delete(directed, i, i+1)
			i = -1
			break
		}
	}
	if len(directed) > 1 {
		slog.Debug("spanning tree left disconnected components", "components", len(directed))
	}
}

func (b *Builder) bridge(a, other *Directed) (string, string, bool) {
	for _, dir := range logic.Directions {
		if !a.Has(dir) {
			continue
		}
		for _, partner := range dir.Partners() {
			if other.Has(partner) {
				return a.Pick(dir), other.Pick(partner), true
			}
		}
	}
	return "", "", false
}
