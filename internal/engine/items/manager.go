// Package items places items onto locations for every player of an attempt
// in two passes: a logic gated exploration pass and an exhaustive fill.
package items

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-rando/internal/engine/attempt"
	"github.com/KirkDiggler/rpg-rando/internal/engine/progression"
	"github.com/KirkDiggler/rpg-rando/internal/engine/vanilla"
	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

// Candidate draws for one player may run this far ahead of the player with
// the fewest before the draw is repeated
const candidateLead = 2

// Shops are reopened during delinearization only when the shop surplus
// per player exceeds this
const delinearizeShopItems = 12

// Config holds the attempt state the manager works on
type Config struct {
	Attempt     *attempt.Context
	Progression *progression.Manager
	Vanilla     *vanilla.Tracker

	// Players limits the pools to these players. Empty means everyone.
	Players []int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Attempt == nil {
		vb.RequiredField("Attempt")
	}
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.Vanilla == nil {
		vb.RequiredField("Vanilla")
	}

	return vb.Build()
}

// Manager owns the item and location pools of one attempt. A symbol is in
// exactly one pool or placed.
type Manager struct {
	ctx     *attempt.Context
	world   *logic.Database
	rand    *rng.Source
	pm      *progression.Manager
	vm      *vanilla.Tracker
	players []int

	randomizedItems     []rando.Symbol
	randomizedLocations []rando.Symbol
	randomizedSet       mapset.Set[rando.Symbol]
	duplicates          []rando.Symbol

	unplacedLocations   []rando.Symbol
	unplacedItems       []rando.Symbol
	unplacedProgression []rando.Symbol
	standbyLocations    []rando.Symbol
	standbyItems        []rando.Symbol
	standbyProgression  []rando.Symbol
	progressionFlags    []bool

	shops         []rando.Symbol
	nonShopItems  map[rando.Symbol]rando.Symbol
	shopItems     map[rando.Symbol][]rando.Symbol
	locationOrder map[rando.Symbol]int
	order         int

	reachable mapset.Set[rando.Symbol]

	overflow         bool
	shopItemCount    int
	normalFillShops  bool
	delinearizeShops bool
}

// New collects and shuffles the pools, removes start items and applies
// start progression
func New(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ctx := cfg.Attempt
	m := &Manager{
		ctx:           ctx,
		world:         ctx.World,
		rand:          ctx.Rand,
		pm:            cfg.Progression,
		vm:            cfg.Vanilla,
		players:       cfg.Players,
		randomizedSet: mapset.New[rando.Symbol](),
		nonShopItems:  make(map[rando.Symbol]rando.Symbol),
		shopItems:     make(map[rando.Symbol][]rando.Symbol),
		locationOrder: make(map[rando.Symbol]int),
		reachable:     mapset.New[rando.Symbol](),
	}
	if len(m.players) == 0 {
		for p := range ctx.Players() {
			m.players = append(m.players, p)
		}
	}

	// Anything notified before the pools exist belongs to another stage
	ctx.DrainRecent()

	for _, p := range m.players {
		m.collectLocations(p)
		m.randomizedItems = append(m.randomizedItems, m.collectItems(p)...)
	}
	m.unplacedLocations = rng.Shuffle(m.rand, m.randomizedLocations)
	m.drawItems()
	m.removeStartItems()

	for _, p := range m.players {
		for _, name := range ctx.StartProgression[p] {
			m.pm.Add(rando.NewSymbol(p, name))
		}
	}
	m.seedReachable()

	nonShopLocations := len(m.unplacedLocations) - len(m.shops)
	m.shopItemCount = len(m.unplacedItems) + len(m.unplacedProgression) - nonShopLocations
	m.normalFillShops = len(m.shops) > 0 && m.shopItemCount >= len(m.shops)
	m.delinearizeShops = m.shopItemCount > delinearizeShopItems*len(m.players)
	if !m.normalFillShops {
		m.unplacedLocations = slices.DeleteFunc(m.unplacedLocations, m.isShop)
	}

	return m, nil
}

func (m *Manager) collectLocations(player int) {
	settings := &m.ctx.Settings[player]
	cursed := m.world.Def().Cursed

	for _, loc := range m.world.Locations() {
		if loc.Shop {
			continue
		}
		if settings.Randomizes(loc.Pool) || (settings.Cursed && cursed.Pool != "" && loc.Pool == cursed.Pool) {
			m.addLocation(rando.NewSymbol(player, loc.Name))
		}
	}
	for _, shop := range m.world.Shops() {
		sym := rando.NewSymbol(player, shop)
		m.shops = append(m.shops, sym)
		m.shopItems[sym] = nil
		m.addLocation(sym)
	}
}

func (m *Manager) addLocation(sym rando.Symbol) {
	m.randomizedLocations = append(m.randomizedLocations, sym)
	m.randomizedSet.Put(sym)
}

// collectItems lists the player's randomized items. In cursed mode removed
// items and filler pools become numbered filler, and every major item gets
// a duplicate when duplicates are on.
func (m *Manager) collectItems(player int) []rando.Symbol {
	settings := &m.ctx.Settings[player]
	cursed := m.world.Def().Cursed

	var out []rando.Symbol
	filler := 0
	for _, item := range m.world.Items() {
		inCursedPool := settings.Cursed && cursed.Pool != "" && item.Pool == cursed.Pool
		if !settings.Randomizes(item.Pool) && !inCursedPool {
			continue
		}

		name := item.Name
		if settings.Cursed && cursed.Filler != "" &&
			(slices.Contains(cursed.Remove, item.Name) || slices.Contains(cursed.FillerPools, item.Pool)) {
			name = rando.FillerName(cursed.Filler, filler)
			filler++
		}
		out = append(out, rando.NewSymbol(player, name))

		if settings.DuplicateMajorItems && item.Major && name == item.Name {
			m.duplicates = append(m.duplicates, rando.NewSymbol(player, rando.DuplicateName(item.Name)))
		}
	}
	return out
}

// drawItems orders the items randomly into the progression and junk pools
// and records the draw schedule NextItem follows
func (m *Manager) drawItems() {
	remaining := slices.Clone(m.randomizedItems)
	drawn := make(map[int]int)
	left := make(map[int]int)
	for _, item := range remaining {
		if m.isCandidate(item) {
			left[item.Player]++
		}
	}
	singleCursed := m.ctx.Players() == 1 && m.ctx.Settings[0].Cursed

	for len(remaining) > 0 {
		i := m.rand.Next(len(remaining))
		item := remaining[i]

		if m.isCandidate(item) && m.candidateAhead(item.Player, drawn, left) {
			continue
		}
		// Balancing compares players, so it has nothing to check here
		if singleCursed && m.isMajor(item) {
			i = m.rand.Next(len(remaining))
			item = remaining[i]
		}

		remaining = slices.Delete(remaining, i, i+1)
		if m.isCandidate(item) {
			drawn[item.Player]++
			left[item.Player]--
		}

		progression := m.isProgression(item)
		if progression {
			m.unplacedProgression = append(m.unplacedProgression, item)
		} else {
			m.unplacedItems = append(m.unplacedItems, item)
		}
		m.progressionFlags = append(m.progressionFlags, progression)
	}
}

// candidateAhead reports whether player already drew more than
// candidateLead candidates beyond a player who still has some to draw
func (m *Manager) candidateAhead(player int, drawn, left map[int]int) bool {
	least := -1
	for _, p := range m.players {
		if p == player || left[p] == 0 {
			continue
		}
		if least < 0 || drawn[p] < least {
			least = drawn[p]
		}
	}
	return least >= 0 && drawn[player] > least+candidateLead
}

func (m *Manager) removeStartItems() {
	for _, p := range m.players {
		for _, name := range m.ctx.StartItems[p] {
			sym := rando.NewSymbol(p, name)
			m.unplacedItems = remove(m.unplacedItems, sym)
			m.unplacedProgression = remove(m.unplacedProgression, sym)
			m.randomizedItems = remove(m.randomizedItems, sym)
		}
	}
}

func remove(list []rando.Symbol, sym rando.Symbol) []rando.Symbol {
	if i := slices.Index(list, sym); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

func (m *Manager) isShop(sym rando.Symbol) bool {
	_, ok := m.shopItems[sym]
	return ok
}

func (m *Manager) isProgression(item rando.Symbol) bool {
	return m.world.IsProgression(item.Name)
}

func (m *Manager) isCandidate(item rando.Symbol) bool {
	def, ok := m.world.Item(item.Name)
	return ok && def.Progression && def.Candidate
}

func (m *Manager) isMajor(item rando.Symbol) bool {
	def, ok := m.world.Item(item.Name)
	return ok && def.Major
}

// AvailableCount is the number of reachable unplaced locations
func (m *Manager) AvailableCount() int {
	count := 0
	for _, loc := range m.unplacedLocations {
		if m.reachable.Has(loc) {
			count++
		}
	}
	return count
}

// CanGuess reports whether an unplaced candidate item remains
func (m *Manager) CanGuess() bool {
	return slices.ContainsFunc(m.unplacedProgression, m.isCandidate)
}

// GuessItem returns the first unplaced candidate. CanGuess must hold.
func (m *Manager) GuessItem() rando.Symbol {
	i := slices.IndexFunc(m.unplacedProgression, m.isCandidate)
	return m.unplacedProgression[i]
}

// NextItem follows the draw schedule when checkFlag is set, otherwise
// prefers junk. There must be an unplaced item.
func (m *Manager) NextItem(checkFlag bool) rando.Symbol {
	if checkFlag && len(m.progressionFlags) > 0 {
		flag := m.progressionFlags[0]
		m.progressionFlags = m.progressionFlags[1:]
		if flag && len(m.unplacedProgression) > 0 {
			return m.unplacedProgression[0]
		}
	}
	if len(m.unplacedItems) > 0 {
		return m.unplacedItems[0]
	}
	return m.unplacedProgression[0]
}

// NextLocation returns the first unplaced location, reachable ones only
// when checkLogic is set
func (m *Manager) NextLocation(checkLogic bool) (rando.Symbol, bool) {
	for _, loc := range m.unplacedLocations {
		if !checkLogic || m.reachable.Has(loc) {
			return loc, true
		}
	}
	return rando.Symbol{}, false
}

// FindNextLocation is NextLocation with logic, used by the transition
// builder to decide whether an item can be placed
func (m *Manager) FindNextLocation() (rando.Symbol, bool) {
	return m.NextLocation(true)
}

// AnyItems reports whether items remain unplaced
func (m *Manager) AnyItems() bool {
	return len(m.unplacedItems)+len(m.unplacedProgression) > 0
}

// IsUnplacedProgression reports whether the item waits in the progression
// pool
func (m *Manager) IsUnplacedProgression(item rando.Symbol) bool {
	return slices.Contains(m.unplacedProgression, item)
}

// IsReachable reports whether the location has been reached
func (m *Manager) IsReachable(loc rando.Symbol) bool {
	return m.reachable.Has(loc)
}

// IsRandomizedLocation reports whether the location is filled by the engine
func (m *Manager) IsRandomizedLocation(loc rando.Symbol) bool {
	return m.randomizedSet.Has(loc)
}

// PlaceItem commits an item to a location. Progression items immediately
// update reachability.
func (m *Manager) PlaceItem(item, loc rando.Symbol) {
	if m.isShop(loc) {
		m.shopItems[loc] = append(m.shopItems[loc], item)
	} else {
		m.nonShopItems[loc] = item
	}
	m.updateOrder(loc)

	m.unplacedItems = remove(m.unplacedItems, item)
	m.unplacedProgression = remove(m.unplacedProgression, item)
	m.unplacedLocations = remove(m.unplacedLocations, loc)
	m.trackCounters(item, loc)

	if m.isProgression(item) {
		m.pm.Add(item)
		m.propagate()
	}
}

// PlaceJunkItemToStandby parks a junk item with a location until pass 2
func (m *Manager) PlaceJunkItemToStandby(item, loc rando.Symbol) {
	m.standbyItems = append(m.standbyItems, item)
	m.standbyLocations = append(m.standbyLocations, loc)
	m.unplacedItems = remove(m.unplacedItems, item)
	m.unplacedLocations = remove(m.unplacedLocations, loc)
	m.updateOrder(loc)
}

// PlaceProgressionToStandby assumes a guessed item is obtained and parks it
// for pass 2
func (m *Manager) PlaceProgressionToStandby(item rando.Symbol) {
	m.unplacedProgression = remove(m.unplacedProgression, item)
	m.standbyProgression = append(m.standbyProgression, item)
	m.pm.Add(item)
	m.propagate()
}

func (m *Manager) updateOrder(loc rando.Symbol) {
	if _, ok := m.locationOrder[loc]; ok {
		return
	}
	m.order++
	m.locationOrder[loc] = m.order
}

// trackCounters feeds grub and essence placements to the counter tables
func (m *Manager) trackCounters(item, loc rando.Symbol) {
	def, ok := m.world.Item(item.Name)
	if !ok {
		return
	}
	world := m.world.Def()
	switch {
	case world.GrubPool != "" && def.Pool == world.GrubPool:
		m.pm.AddGrubLocation(item.Player, loc)
	case world.EssencePool != "" && def.Pool == world.EssencePool:
		m.pm.AddEssenceLocation(item.Player, loc, def.Essence)
	}
}

// NonShopItems maps every filled single location to its item
func (m *Manager) NonShopItems() map[rando.Symbol]rando.Symbol {
	return m.nonShopItems
}

// ShopItems maps every shop to its items in placement order
func (m *Manager) ShopItems() map[rando.Symbol][]rando.Symbol {
	return m.shopItems
}

// Shops lists every shop in a stable order
func (m *Manager) Shops() []rando.Symbol {
	return m.shops
}

// RandomizedLocations lists the locations the engine fills
func (m *Manager) RandomizedLocations() []rando.Symbol {
	return m.randomizedLocations
}

// RandomizedItems lists the items the engine places, duplicates included
// once they are placed
func (m *Manager) RandomizedItems() []rando.Symbol {
	return m.randomizedItems
}

// LocationOrder maps locations to the order they left the unplaced pool
func (m *Manager) LocationOrder() map[rando.Symbol]int {
	return m.locationOrder
}

// NormalFillShops reports whether every shop must hold an item
func (m *Manager) NormalFillShops() bool {
	return m.normalFillShops
}

// ItemLocations inverts the placements into item to location
func (m *Manager) ItemLocations() map[rando.Symbol]rando.Symbol {
	out := make(map[rando.Symbol]rando.Symbol, len(m.randomizedItems))
	for loc, item := range m.nonShopItems {
		out[item] = loc
	}
	for _, shop := range m.shops {
		for _, item := range m.shopItems[shop] {
			out[item] = shop
		}
	}
	return out
}
