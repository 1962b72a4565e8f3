package items

import (
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/pkg/rng"
)

const (
	// Chance denominators used by Delinearize
	reopenShopChance   = 8
	releaseJunkChance  = 18
	maxShopRepairMoves = 5

	// Duplicates never land in the first locations reached
	duplicateEarlyDepth = 20
)

// FirstPass is the logic gated exploration pass. Junk is parked in standby
// until overflow; progression is placed immediately.
func (m *Manager) FirstPass() {
	for m.AnyItems() {
		var item rando.Symbol

		switch m.AvailableCount() {
		case 0:
			if len(m.unplacedLocations) > 0 && m.CanGuess() {
				m.enterOverflow()
				continue
			}
			return
		case 1:
			forced, ok := m.ForceItem()
			switch {
			case ok:
				item = forced
				m.Delinearize()
			case m.CanGuess():
				m.enterOverflow()
				continue
			default:
				item = m.NextItem(true)
			}
		default:
			item = m.NextItem(true)
		}

		loc, ok := m.NextLocation(true)
		if !ok {
			return
		}

		if !m.overflow && !m.isProgression(item) {
			m.PlaceJunkItemToStandby(item, loc)
		} else {
			m.PlaceItem(item, loc)
		}
	}
}

func (m *Manager) enterOverflow() {
	if !m.overflow {
		slog.Info("entered overflow state", "placed", m.order, "unplaced_locations", len(m.unplacedLocations))
	}
	m.overflow = true
	m.PlaceProgressionToStandby(m.GuessItem())
}

// Delinearize occasionally reopens a shop and occasionally releases a
// parked junk item with its location back into circulation
func (m *Manager) Delinearize() {
	if m.delinearizeShops && len(m.shops) > 0 && m.rand.Chance(reopenShopChance) {
		shop := rng.Pick(m.rand, m.shops)
		if !slices.Contains(m.unplacedLocations, shop) {
			m.unplacedLocations = m.insertRandom(m.unplacedLocations, shop)
		}
	}

	if len(m.standbyItems) > 0 && m.rand.Chance(releaseJunkChance) {
		i := m.rand.Next(len(m.standbyItems))
		item, loc := m.standbyItems[i], m.standbyLocations[i]
		if m.ctx.Settings[item.Player].Cursed {
			return
		}
		m.standbyItems = slices.Delete(m.standbyItems, i, i+1)
		m.standbyLocations = slices.Delete(m.standbyLocations, i, i+1)
		m.unplacedItems = append(m.unplacedItems, item)
		m.unplacedLocations = m.insertRandom(m.unplacedLocations, loc)
	}
}

func (m *Manager) insertRandom(list []rando.Symbol, sym rando.Symbol) []rando.Symbol {
	return slices.Insert(list, m.rand.Next(len(list)+1), sym)
}

// TransferStandby moves the standby pools back for pass 2: standby
// progression, then unplaced progression, then standby junk, then the rest
func (m *Manager) TransferStandby() {
	items := slices.Concat(m.standbyProgression, m.unplacedProgression, m.standbyItems, m.unplacedItems)
	locations := slices.Concat(m.standbyLocations, m.unplacedLocations)

	m.unplacedItems = items
	m.unplacedProgression = nil
	m.unplacedLocations = locations
	m.standbyProgression = nil
	m.standbyItems = nil
	m.standbyLocations = nil
}

// SecondPass fills every remaining location ignoring logic, then repairs
// empty shops and reports unfilled locations
func (m *Manager) SecondPass() {
	m.TransferStandby()

	for m.AnyItems() {
		item := m.NextItem(false)
		loc, ok := m.NextLocation(false)
		if !ok {
			if len(m.shops) == 0 {
				slog.Error("no location left for item", "item", item.String())
				return
			}
			loc = rng.Pick(m.rand, m.shops)
		}
		m.PlaceItem(item, loc)
	}

	m.repairShops()

	for _, loc := range m.randomizedLocations {
		if m.isShop(loc) {
			continue
		}
		if _, ok := m.nonShopItems[loc]; !ok {
			slog.Error("location left unfilled", "location", loc.String())
		}
	}
}

// repairShops moves non-progression items from crowded shops into empty
// ones when every shop is expected to sell something
func (m *Manager) repairShops() {
	if !m.normalFillShops || !slices.ContainsFunc(m.shops, m.emptyShop) {
		return
	}

	available := 0
	for _, shop := range m.shops {
		for _, item := range m.shopItems[shop] {
			if !m.isProgression(item) {
				available++
			}
		}
	}
	if available < len(m.shops) {
		slog.Error("not enough shop items to fill every shop", "shops", len(m.shops), "items", available)
		return
	}

	moves := 0
	for _, shop := range m.shops {
		if !m.emptyShop(shop) {
			continue
		}
		moves++
		if moves > maxShopRepairMoves {
			slog.Error("gave up repairing empty shops", "moves", maxShopRepairMoves)
			return
		}

		source, ok := m.crowdedShop()
		if !ok {
			slog.Error("no shop can spare an item", "empty_shop", shop.String())
			return
		}
		items := m.shopItems[source]
		i := slices.IndexFunc(items, func(item rando.Symbol) bool { return !m.isProgression(item) })
		item := items[i]
		m.shopItems[source] = slices.Delete(items, i, i+1)
		m.shopItems[shop] = append(m.shopItems[shop], item)
		m.updateOrder(shop)
	}
}

func (m *Manager) emptyShop(shop rando.Symbol) bool {
	return len(m.shopItems[shop]) == 0
}

// crowdedShop finds the first shop holding more than one non-progression
// item
func (m *Manager) crowdedShop() (rando.Symbol, bool) {
	for _, shop := range m.shops {
		junk := 0
		for _, item := range m.shopItems[shop] {
			if !m.isProgression(item) {
				junk++
			}
		}
		if junk > 1 {
			return shop, true
		}
	}
	return rando.Symbol{}, false
}

// PlaceDuplicates puts each duplicated major item at a location reached
// past the early game that holds junk, moving the junk to the least filled
// shop
func (m *Manager) PlaceDuplicates() {
	if len(m.duplicates) == 0 {
		return
	}
	if len(m.shops) == 0 {
		slog.Warn("duplicates need a shop to displace junk into", "duplicates", len(m.duplicates))
		return
	}

	deepest := 0
	for _, order := range m.locationOrder {
		deepest = max(deepest, order)
	}
	early := min(duplicateEarlyDepth, deepest/4)

	for _, dup := range m.duplicates {
		var candidates []rando.Symbol
		for _, loc := range m.randomizedLocations {
			order, ok := m.locationOrder[loc]
			if !ok || order <= early || order > deepest || m.isShop(loc) {
				continue
			}
			item, ok := m.nonShopItems[loc]
			if !ok || m.isProgression(item) {
				continue
			}
			candidates = append(candidates, loc)
		}

		shop := m.leastFilledShop()
		if len(candidates) == 0 {
			m.shopItems[shop] = append(m.shopItems[shop], dup)
		} else {
			loc := rng.Pick(m.rand, candidates)
			m.shopItems[shop] = append(m.shopItems[shop], m.nonShopItems[loc])
			m.nonShopItems[loc] = dup
		}
		m.updateOrder(shop)
		m.randomizedItems = append(m.randomizedItems, dup)
	}
	m.duplicates = nil
}

func (m *Manager) leastFilledShop() rando.Symbol {
	best := m.shops[0]
	for _, shop := range m.shops[1:] {
		if len(m.shopItems[shop]) < len(m.shopItems[best]) {
			best = shop
		}
	}
	return best
}
