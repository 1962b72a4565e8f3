// Package progression tracks what each player has obtained during an
// attempt: a bit per progression name plus the grub and essence counters.
package progression

import (
	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
)

type counterEntry struct {
	location rando.Symbol
	value    int
}

type playerState struct {
	bits         []uint64
	grubs        int
	essence      int
	grubTable    []counterEntry
	essenceTable []counterEntry
}

func (p *playerState) Has(bit int) bool {
	return p.bits[bit/64]&(1<<(uint(bit)%64)) != 0
}

func (p *playerState) Grubs() int   { return p.grubs }
func (p *playerState) Essence() int { return p.essence }

func (p *playerState) set(bit int) bool {
	if p.Has(bit) {
		return false
	}
	p.bits[bit/64] |= 1 << (uint(bit) % 64)
	return true
}

func (p *playerState) clear(bit int) {
	p.bits[bit/64] &^= 1 << (uint(bit) % 64)
}

type tempBit struct {
	player int
	bit    int
}

type snapshot struct {
	grubs   int
	essence int
}

// Manager is the progression state for every player of an attempt
type Manager struct {
	ctx     *attempt.Context
	world   *logic.Database
	players []*playerState

	tempMode  bool
	temp      []tempBit
	saved     []snapshot
	notifying bool
}

// New builds a state with the players' difficulty flags and the vanilla
// counter tables. Nothing is notified during construction.
func New(ctx *attempt.Context) *Manager {
	m := &Manager{
		ctx:     ctx,
		world:   ctx.World,
		players: make([]*playerState, ctx.Players()),
	}

	words := (ctx.World.BitCount() + 63) / 64
	for p := range m.players {
		m.players[p] = &playerState{bits: make([]uint64, words)}
		m.applyDifficulty(p)
		m.buildCounterTables(p)
	}
	m.recalculate()
	m.notifying = true

	return m
}

func (m *Manager) applyDifficulty(player int) {
	settings := m.ctx.Settings[player]
	flags := append([]string(nil), settings.Skips...)
	if settings.Cursed {
		flags = append(flags, logic.FlagCursed)
	} else {
		flags = append(flags, logic.FlagNotCursed)
	}
	for _, flag := range flags {
		if bit, ok := m.world.Bit(flag); ok {
			m.players[player].set(bit)
		}
	}
}

func (m *Manager) buildCounterTables(player int) {
	def := m.world.Def()
	st := m.players[player]

	for _, loc := range m.world.Locations() {
		if loc.Essence > 0 {
			st.essenceTable = append(st.essenceTable, counterEntry{rando.NewSymbol(player, loc.Name), loc.Essence})
		}
	}

	for _, item := range m.world.Items() {
		if item.Vanilla == "" {
			continue
		}
		switch {
		case def.GrubPool != "" && item.Pool == def.GrubPool && !m.ctx.Randomizes(player, item.Pool):
			st.grubTable = append(st.grubTable, counterEntry{rando.NewSymbol(player, item.Vanilla), 1})
		case def.EssencePool != "" && item.Pool == def.EssencePool && !m.ctx.Randomizes(player, item.Pool):
			st.essenceTable = append(st.essenceTable, counterEntry{rando.NewSymbol(player, item.Vanilla), item.Essence})
		}
	}
}

// AddGrubLocation records that one of owner's grubs sits at location
func (m *Manager) AddGrubLocation(owner int, location rando.Symbol) {
	m.players[owner].grubTable = append(m.players[owner].grubTable, counterEntry{location, 1})
}

// AddEssenceLocation records that value essence for owner sits at location
func (m *Manager) AddEssenceLocation(owner int, location rando.Symbol, value int) {
	m.players[owner].essenceTable = append(m.players[owner].essenceTable, counterEntry{location, value})
}

// Has reports whether the symbol's progression bit is set. Names without a
// bit are never held.
func (m *Manager) Has(sym rando.Symbol) bool {
	bit, ok := m.world.Bit(sym.Name)
	return ok && m.players[sym.Player].Has(bit)
}

// CanGet asks the logic oracle about a location or transition using the
// owning player's state and cost overrides
func (m *Manager) CanGet(sym rando.Symbol) bool {
	return m.world.CanGet(sym.Name, m.players[sym.Player], m.ctx.Costs[sym.Player])
}

// Grubs returns the player's current grub counter
func (m *Manager) Grubs(player int) int {
	return m.players[player].grubs
}

// Essence returns the player's current essence counter
func (m *Manager) Essence(player int) int {
	return m.players[player].essence
}

// Add obtains a progression symbol. Outside a temp scope the symbol and
// any waypoints it unlocks are recorded as recent progression on the
// attempt context.
func (m *Manager) Add(sym rando.Symbol) {
	bit, ok := m.world.Bit(sym.Name)
	if !ok {
		return
	}
	m.setBit(sym.Player, bit, sym)
	m.recalculate()
	m.updateWaypoints()
}

// AddTemp opens a temp scope if none is open and adds the symbol to it.
// Everything added until RemoveTempItems or SaveTempItems is provisional.
func (m *Manager) AddTemp(sym rando.Symbol) {
	if !m.tempMode {
		m.tempMode = true
		m.temp = nil
		m.saved = make([]snapshot, len(m.players))
		for p, st := range m.players {
			m.saved[p] = snapshot{grubs: st.grubs, essence: st.essence}
		}
	}
	m.Add(sym)
}

// RemoveTempItems unwinds the temp scope to the exact pre-scope state
func (m *Manager) RemoveTempItems() {
	if !m.tempMode {
		return
	}
	for _, t := range m.temp {
		m.players[t.player].clear(t.bit)
	}
	for p, st := range m.players {
		st.grubs = m.saved[p].grubs
		st.essence = m.saved[p].essence
	}
	m.closeTemp()
}

// SaveTempItems commits the temp scope and notifies what it added
func (m *Manager) SaveTempItems() {
	if !m.tempMode {
		return
	}
	temp := m.temp
	m.closeTemp()
	for _, t := range temp {
		m.notify(rando.NewSymbol(t.player, m.world.BitName(t.bit)))
	}
}

func (m *Manager) closeTemp() {
	m.tempMode = false
	m.temp = nil
	m.saved = nil
}

// TempItems lists what the open temp scope has added, in order
func (m *Manager) TempItems() []rando.Symbol {
	out := make([]rando.Symbol, 0, len(m.temp))
	for _, t := range m.temp {
		out = append(out, rando.NewSymbol(t.player, m.world.BitName(t.bit)))
	}
	return out
}

// InTempScope reports whether a temp scope is open
func (m *Manager) InTempScope() bool {
	return m.tempMode
}

func (m *Manager) setBit(player, bit int, sym rando.Symbol) {
	if m.players[player].set(bit) && m.tempMode {
		m.temp = append(m.temp, tempBit{player: player, bit: bit})
	}
	if !m.tempMode {
		m.notify(sym)
	}
}

func (m *Manager) notify(sym rando.Symbol) {
	if m.notifying {
		m.ctx.Notify(sym)
	}
}

// updateWaypoints absorbs waypoints whose requirement now holds for every
// player that does not randomize rooms
func (m *Manager) updateWaypoints() {
	for p, st := range m.players {
		if m.ctx.Settings[p].RandomizeRooms {
			continue
		}
		for {
			satisfied := m.world.WaypointsSatisfied(st)
			if len(satisfied) == 0 {
				break
			}
			for _, name := range satisfied {
				bit, _ := m.world.Bit(name)
				m.setBit(p, bit, rando.NewSymbol(p, name))
			}
			m.recalculate()
		}
	}
}

// recalculate refreshes every player's counters until they settle. Grubs
// and essence may sit at another player's locations, so all players are
// refreshed together.
func (m *Manager) recalculate() {
	def := m.world.Def()
	for changed := true; changed; {
		changed = false
		for p, st := range m.players {
			settings := m.ctx.Settings[p]
			grubs := m.sum(st.grubTable, def.MaxGrubCost+settings.GrubTolerance)
			essence := m.sum(st.essenceTable, def.MaxEssenceCost+settings.EssenceTolerance)
			if grubs > st.grubs || essence > st.essence {
				changed = true
			}
			st.grubs = max(st.grubs, grubs)
			st.essence = max(st.essence, essence)
		}
	}
}

// sum adds up the values at reachable locations, stopping once limit is
// reached
func (m *Manager) sum(table []counterEntry, limit int) int {
	total := 0
	for _, entry := range table {
		if total >= limit {
			break
		}
		if m.CanGet(entry.location) {
			total += entry.value
		}
	}
	return total
}

// Mute stops notifications for a state nobody drains, such as the
// validator's
func (m *Manager) Mute() {
	m.notifying = false
}

// Walk obtains, until nothing changes, every transition of the player whose
// logic holds and every target of an obtained transition. It reports
// whether anything was added.
func (m *Manager) Walk(player int, targets map[string]string) bool {
	added := false
	for changed := true; changed; {
		changed = false
		for _, t := range m.world.Transitions() {
			sym := rando.NewSymbol(player, t.Name)
			if !m.Has(sym) {
				if !m.CanGet(sym) {
					continue
				}
				m.Add(sym)
				changed = true
			}
			target, ok := targets[t.Name]
			if !ok {
				continue
			}
			if next := rando.NewSymbol(player, target); !m.Has(next) {
				m.Add(next)
				changed = true
			}
		}
		added = added || changed
	}
	return added
}
