package transitions

import (
	"slices"

	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

// Directed is a pool of transition names bucketed by door direction
type Directed struct {
	world *logic.Database
	rand  *rng.Source
	byDir map[logic.Direction][]string
}

// NewDirected creates an empty pool
func NewDirected(world *logic.Database, rand *rng.Source) *Directed {
	return &Directed{
		world: world,
		rand:  rand,
		byDir: make(map[logic.Direction][]string),
	}
}

// Add puts transitions into the pool, ignoring ones already present
func (d *Directed) Add(names ...string) {
	for _, name := range names {
		dir := d.world.Direction(name)
		if !slices.Contains(d.byDir[dir], name) {
			d.byDir[dir] = append(d.byDir[dir], name)
		}
	}
}

// Remove takes transitions out of the pool
func (d *Directed) Remove(names ...string) {
	for _, name := range names {
		dir := d.world.Direction(name)
		if i := slices.Index(d.byDir[dir], name); i >= 0 {
			d.byDir[dir] = slices.Delete(d.byDir[dir], i, i+1)
		}
	}
}

// Contains reports whether the transition is in the pool
func (d *Directed) Contains(name string) bool {
	return slices.Contains(d.byDir[d.world.Direction(name)], name)
}

// Has reports whether the pool holds a transition of the direction
func (d *Directed) Has(dir logic.Direction) bool {
	return len(d.byDir[dir]) > 0
}

// Test reports whether the pool holds a partner for the transition
func (d *Directed) Test(name string) bool {
	for _, p := range d.world.Direction(name).Partners() {
		if d.Has(p) {
			return true
		}
	}
	return false
}

// Any reports whether the pool is not empty
func (d *Directed) Any() bool {
	return d.Count() > 0
}

// Count is the number of transitions in the pool
func (d *Directed) Count() int {
	n := 0
	for _, names := range d.byDir {
		n += len(names)
	}
	return n
}

// All lists the pool in direction order
func (d *Directed) All() []string {
	var out []string
	for _, dir := range logic.Directions {
		out = append(out, d.byDir[dir]...)
	}
	return out
}

// Partners lists the transitions in the pool that may pair with name
func (d *Directed) Partners(name string) []string {
	var out []string
	for _, p := range d.world.Direction(name).Partners() {
		for _, candidate := range d.byDir[p] {
			if candidate != name {
				out = append(out, candidate)
			}
		}
	}
	return out
}

// Next picks a random partner for name. With favorSameArea a partner in
// the same area wins when one exists.
func (d *Directed) Next(name string, favorSameArea bool) (string, bool) {
	partners := d.Partners(name)
	if len(partners) == 0 {
		return "", false
	}

	if favorSameArea {
		area := d.area(name)
		same := slices.DeleteFunc(slices.Clone(partners), func(p string) bool {
			return d.area(p) != area
		})
		if len(same) > 0 {
			partners = same
		}
	}
	return rng.Pick(d.rand, partners), true
}

// Pick returns a random transition of the direction. Has must hold.
func (d *Directed) Pick(dir logic.Direction) string {
	return rng.Pick(d.rand, d.byDir[dir])
}

func (d *Directed) area(name string) string {
	if t, ok := d.world.Transition(name); ok {
		return t.Area
	}
	return ""
}
