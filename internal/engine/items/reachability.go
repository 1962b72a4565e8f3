package items

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
)

// seedReachable scans every location and transition the engine cares about
// once, then follows whatever that unlocked
func (m *Manager) seedReachable() {
	candidates := append(append([]rando.Symbol(nil), m.randomizedLocations...), m.vm.Locations()...)
	for _, loc := range candidates {
		m.reach(loc)
	}

	for _, p := range m.players {
		for _, t := range m.world.Transitions() {
			sym := rando.NewSymbol(p, t.Name)
			if !m.pm.Has(sym) && m.pm.CanGet(sym) {
				m.pm.Add(sym)
			}
		}
	}

	m.propagate()
}

func (m *Manager) reach(loc rando.Symbol) {
	if m.reachable.Has(loc) || !m.pm.CanGet(loc) {
		return
	}
	m.reachable.Put(loc)
	m.vm.Obtain(loc, m.pm)
}

// Refresh follows progression obtained outside the manager, such as
// transitions paired by the transition builder
func (m *Manager) Refresh() {
	m.propagate()
}

// propagate drains recent progression from the attempt context batch by
// batch until nothing new is obtained. Each batch can reach locations,
// fold in vanilla progression, walk through paired transitions and open
// transitions whose logic now holds.
func (m *Manager) propagate() {
	for {
		recent := m.ctx.DrainRecent()
		if len(recent) == 0 {
			return
		}

		for _, loc := range m.locationsAffectedBy(recent) {
			m.reach(loc)
		}
		m.openTransitions(recent)
	}
}

// openTransitions adds the targets of reached transitions and transitions
// whose logic now holds. It reports whether anything was added.
func (m *Manager) openTransitions(from []rando.Symbol) bool {
	opened := false
	for _, sym := range from {
		target, ok := m.ctx.Transitions[sym.Player][sym.Name]
		if !ok {
			continue
		}
		if t := rando.NewSymbol(sym.Player, target); !m.pm.Has(t) {
			m.pm.Add(t)
			opened = true
		}
	}
	for _, t := range m.transitionsAffectedBy(from) {
		if !m.pm.Has(t) && m.pm.CanGet(t) {
			m.pm.Add(t)
			opened = true
		}
	}
	return opened
}

// locationsAffectedBy lists locations whose logic mentions any of the
// symbols, plus every counter gated location since counters may have moved
func (m *Manager) locationsAffectedBy(symbols []rando.Symbol) []rando.Symbol {
	seen := mapset.New[rando.Symbol]()
	var out []rando.Symbol
	add := func(sym rando.Symbol) {
		if !seen.Has(sym) {
			seen.Put(sym)
			out = append(out, sym)
		}
	}

	for _, sym := range symbols {
		for _, name := range m.world.LocationsAffectedBy(sym.Name) {
			add(rando.NewSymbol(sym.Player, name))
		}
	}
	if len(symbols) > 0 {
		for _, p := range m.players {
			for _, name := range m.world.CostGated() {
				add(rando.NewSymbol(p, name))
			}
		}
	}
	return out
}

func (m *Manager) transitionsAffectedBy(symbols []rando.Symbol) []rando.Symbol {
	seen := mapset.New[rando.Symbol]()
	var out []rando.Symbol
	for _, sym := range symbols {
		for _, name := range m.world.TransitionsAffectedBy(sym.Name) {
			t := rando.NewSymbol(sym.Player, name)
			if !seen.Has(t) {
				seen.Put(t)
				out = append(out, t)
			}
		}
	}
	return out
}

// ForceItem returns the first unplaced progression item that, once
// obtained, makes a new randomized location reachable. Every probe runs in
// a temp scope that is fully rolled back.
func (m *Manager) ForceItem() (rando.Symbol, bool) {
	for _, item := range m.unplacedProgression {
		m.pm.AddTemp(item)
		found := m.Probe()
		m.pm.RemoveTempItems()
		if found {
			return item, true
		}
	}
	return rando.Symbol{}, false
}

// Probe reports whether the open temp scope reaches a randomized location
// that is not reached yet, opening transitions as far as the temp scope
// allows
func (m *Manager) Probe() bool {
	for {
		temp := m.pm.TempItems()
		if m.newLocationIn(temp) {
			return true
		}
		if !m.openTransitions(temp) {
			return false
		}
	}
}

func (m *Manager) newLocationIn(temp []rando.Symbol) bool {
	for _, loc := range m.locationsAffectedBy(temp) {
		if m.randomizedSet.Has(loc) && !m.reachable.Has(loc) && m.pm.CanGet(loc) {
			return true
		}
	}
	return false
}
