// Package logic holds the static world definition and the requirement
// evaluator the generation engine asks "can this player get X" of.
package logic

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/errors"
)

// Flags that are always defined in addition to the world's own flags
const (
	FlagCursed    = "CURSED"
	FlagNotCursed = "NOTCURSED"
)

// Oracle answers reachability questions for a single player's state. It is
// referentially transparent for any name in its universe.
type Oracle interface {
	Bit(name string) (int, bool)
	BitCount() int
	CanGet(name string, state State, costs map[string]int) bool
	LocationsAffectedBy(name string) []string
	TransitionsAffectedBy(name string) []string
}

var _ Oracle = (*Database)(nil)

// Database is the immutable, YAML backed world. Every accessor returns data
// in definition order.
type Database struct {
	def *rando.WorldDef

	items       map[string]*rando.ItemDef
	locations   map[string]*rando.LocationDef
	transitions map[string]*rando.TransitionDef
	starts      map[string]*rando.StartDef

	bits     map[string]int
	bitNames []string

	logic         map[string]*requirement
	waypointLogic []*requirement

	locationsBy   map[string][]string
	transitionsBy map[string][]string
	costGated     []string
	shops         []string
	vanillaAt     map[string][]string
}

// NewDatabase indexes a world definition. The definition must not be
// modified afterwards.
func NewDatabase(def *rando.WorldDef) (*Database, error) {
	if def == nil {
		return nil, errors.InvalidArgument("world definition is required")
	}
	if def.MaxGrubCost <= 0 {
		def.MaxGrubCost = rando.DefaultMaxGrubCost
	}
	if def.MaxEssenceCost <= 0 {
		def.MaxEssenceCost = rando.DefaultMaxEssenceCost
	}

	db := &Database{
		def:           def,
		items:         make(map[string]*rando.ItemDef, len(def.Items)),
		locations:     make(map[string]*rando.LocationDef, len(def.Locations)),
		transitions:   make(map[string]*rando.TransitionDef, len(def.Transitions)),
		starts:        make(map[string]*rando.StartDef, len(def.Starts)),
		bits:          make(map[string]int),
		logic:         make(map[string]*requirement),
		locationsBy:   make(map[string][]string),
		transitionsBy: make(map[string][]string),
		vanillaAt:     make(map[string][]string),
	}

	if err := db.index(); err != nil {
		return nil, errors.Wrap(err, "invalid world definition")
	}
	if err := db.compile(); err != nil {
		return nil, errors.Wrap(err, "invalid world logic")
	}

	return db, nil
}

func (db *Database) addBit(name string) error {
	if _, ok := db.bits[name]; ok {
		return errors.AlreadyExists("progression name defined twice: " + name)
	}
	db.bits[name] = len(db.bitNames)
	db.bitNames = append(db.bitNames, name)
	return nil
}

func (db *Database) index() error {
	for i := range db.def.Items {
		item := &db.def.Items[i]
		if item.Name == "" {
			return errors.InvalidArgumentf("item %d has no name", i)
		}
		if _, ok := db.items[item.Name]; ok {
			return errors.AlreadyExists("item defined twice: " + item.Name)
		}
		db.items[item.Name] = item
		if item.Progression {
			if err := db.addBit(item.Name); err != nil {
				return err
			}
		}
	}

	for i := range db.def.Locations {
		loc := &db.def.Locations[i]
		if _, ok := db.locations[loc.Name]; ok {
			return errors.AlreadyExists("location defined twice: " + loc.Name)
		}
		switch loc.CostType {
		case rando.CostTypeNone:
		case rando.CostTypeGrub, rando.CostTypeEssence:
			db.costGated = append(db.costGated, loc.Name)
		default:
			return errors.InvalidArgumentf("location %s has unknown cost type %q", loc.Name, loc.CostType)
		}
		db.locations[loc.Name] = loc
		if loc.Shop {
			db.shops = append(db.shops, loc.Name)
		}
	}

	for i := range db.def.Transitions {
		t := &db.def.Transitions[i]
		if _, ok := db.transitions[t.Name]; ok {
			return errors.AlreadyExists("transition defined twice: " + t.Name)
		}
		if _, ok := db.locations[t.Name]; ok {
			return errors.AlreadyExists("transition shares a name with a location: " + t.Name)
		}
		switch t.OneWay {
		case rando.OneWayNone, rando.OneWayEntrance, rando.OneWayExit:
		default:
			return errors.InvalidArgumentf("transition %s has unknown one_way %q", t.Name, t.OneWay)
		}
		if _, err := DirectionOf(t.Door); err != nil {
			return errors.Wrapf(err, "transition %s", t.Name)
		}
		db.transitions[t.Name] = t
		if err := db.addBit(t.Name); err != nil {
			return err
		}
	}

	for _, wp := range db.def.Waypoints {
		if err := db.addBit(wp.Name); err != nil {
			return err
		}
	}

	flags := append([]string{FlagCursed, FlagNotCursed}, db.def.Flags...)
	for _, flag := range flags {
		if _, ok := db.bits[flag]; ok {
			continue
		}
		if err := db.addBit(flag); err != nil {
			return err
		}
	}

	for i := range db.def.Items {
		item := &db.def.Items[i]
		if item.Vanilla == "" {
			if _, ok := db.locations[item.Name]; !ok {
				continue
			}
			item.Vanilla = item.Name
		}
		if _, ok := db.locations[item.Vanilla]; !ok {
			return errors.NotFoundf("vanilla location %s of item %s", item.Vanilla, item.Name)
		}
		db.vanillaAt[item.Vanilla] = append(db.vanillaAt[item.Vanilla], item.Name)
	}

	for _, t := range db.def.Transitions {
		if _, ok := db.transitions[t.Vanilla]; t.Vanilla != "" && !ok {
			return errors.NotFoundf("vanilla target %s of transition %s", t.Vanilla, t.Name)
		}
	}

	for i := range db.def.Starts {
		start := &db.def.Starts[i]
		if start.Waypoint != "" {
			if _, ok := db.bits[start.Waypoint]; !ok {
				return errors.NotFoundf("waypoint %s of start %s", start.Waypoint, start.Name)
			}
		}
		for _, t := range []string{start.AreaTransition, start.RoomTransition} {
			if _, ok := db.transitions[t]; t != "" && !ok {
				return errors.NotFoundf("transition %s of start %s", t, start.Name)
			}
		}
		db.starts[start.Name] = start
	}
	if len(db.def.Starts) > 0 {
		if _, ok := db.starts[db.def.DefaultStart]; !ok {
			return errors.NotFoundf("default start %q", db.def.DefaultStart)
		}
	}

	return nil
}

func (db *Database) compile() error {
	for _, loc := range db.def.Locations {
		req, err := compile(loc.Logic, db.Bit)
		if err != nil {
			return errors.Wrapf(err, "location %s", loc.Name)
		}
		db.logic[locationKey(loc.Name)] = req
		for _, name := range unique(req.names) {
			db.locationsBy[name] = append(db.locationsBy[name], loc.Name)
		}
	}

	for _, t := range db.def.Transitions {
		req, err := compile(t.Logic, db.Bit)
		if err != nil {
			return errors.Wrapf(err, "transition %s", t.Name)
		}
		db.logic[transitionKey(t.Name)] = req
		for _, name := range unique(req.names) {
			db.transitionsBy[name] = append(db.transitionsBy[name], t.Name)
		}
	}

	for _, wp := range db.def.Waypoints {
		req, err := compile(wp.Logic, db.Bit)
		if err != nil {
			return errors.Wrapf(err, "waypoint %s", wp.Name)
		}
		db.waypointLogic = append(db.waypointLogic, req)
	}

	return nil
}

func locationKey(name string) string   { return "L:" + name }
func transitionKey(name string) string { return "T:" + name }

func unique(names []string) []string {
	seen := mapset.New[string]()
	out := names[:0:0]
	for _, name := range names {
		if seen.Has(name) {
			continue
		}
		seen.Put(name)
		out = append(out, name)
	}
	return out
}

// Bit returns the progression bit of a name. Suffixed copies (duplicates,
// cursed filler) share the bit of their base item.
func (db *Database) Bit(name string) (int, bool) {
	if bit, ok := db.bits[name]; ok {
		return bit, true
	}
	if rando.IsSuffixed(name) {
		bit, ok := db.bits[rando.BaseName(name)]
		return bit, ok
	}
	return 0, false
}

// BitCount is the size of the per player bit vector
func (db *Database) BitCount() int {
	return len(db.bitNames)
}

// BitName is the inverse of Bit
func (db *Database) BitName(bit int) string {
	return db.bitNames[bit]
}

// CanGet evaluates the requirement of a location or transition. Locations
// with a grub or essence cost also need the counter to reach the cost,
// taken from costs when present. Unknown names are never obtainable.
func (db *Database) CanGet(name string, state State, costs map[string]int) bool {
	if req, ok := db.logic[transitionKey(name)]; ok {
		return req.root.eval(state)
	}

	req, ok := db.logic[locationKey(name)]
	if !ok {
		return false
	}
	if !req.root.eval(state) {
		return false
	}

	loc := db.locations[name]
	cost, ok := costs[name]
	if !ok {
		cost = loc.Cost
	}
	switch loc.CostType {
	case rando.CostTypeGrub:
		return state.Grubs() >= cost
	case rando.CostTypeEssence:
		return state.Essence() >= cost
	}
	return true
}

// WaypointsSatisfied returns the waypoints whose requirement holds and
// which the state does not hold yet
func (db *Database) WaypointsSatisfied(state State) []string {
	var out []string
	for i, wp := range db.def.Waypoints {
		if state.Has(db.bits[wp.Name]) {
			continue
		}
		if db.waypointLogic[i].root.eval(state) {
			out = append(out, wp.Name)
		}
	}
	return out
}

// LocationsAffectedBy lists locations whose logic mentions the name
func (db *Database) LocationsAffectedBy(name string) []string {
	if rando.IsSuffixed(name) {
		name = rando.BaseName(name)
	}
	return db.locationsBy[name]
}

// TransitionsAffectedBy lists transitions whose logic mentions the name
func (db *Database) TransitionsAffectedBy(name string) []string {
	if rando.IsSuffixed(name) {
		name = rando.BaseName(name)
	}
	return db.transitionsBy[name]
}

// CostGated lists locations gated by the grub or essence counter
func (db *Database) CostGated() []string {
	return db.costGated
}

// Def exposes the raw definition, read only
func (db *Database) Def() *rando.WorldDef {
	return db.def
}

// Item looks up an item, resolving suffixed copies to their base
func (db *Database) Item(name string) (*rando.ItemDef, bool) {
	if item, ok := db.items[name]; ok {
		return item, true
	}
	item, ok := db.items[rando.BaseName(name)]
	return item, ok
}

// IsProgression reports whether the item carries a progression bit
func (db *Database) IsProgression(name string) bool {
	item, ok := db.Item(name)
	return ok && item.Progression
}

// Items returns every item definition
func (db *Database) Items() []rando.ItemDef {
	return db.def.Items
}

// Location looks up a location
func (db *Database) Location(name string) (*rando.LocationDef, bool) {
	loc, ok := db.locations[name]
	return loc, ok
}

// Locations returns every location definition
func (db *Database) Locations() []rando.LocationDef {
	return db.def.Locations
}

// Shops returns the names of shop locations
func (db *Database) Shops() []string {
	return db.shops
}

// IsShop reports whether the location is a shop
func (db *Database) IsShop(name string) bool {
	loc, ok := db.locations[name]
	return ok && loc.Shop
}

// VanillaItemsAt lists the items whose default location is the named one
func (db *Database) VanillaItemsAt(location string) []string {
	return db.vanillaAt[location]
}

// Transition looks up a transition
func (db *Database) Transition(name string) (*rando.TransitionDef, bool) {
	t, ok := db.transitions[name]
	return t, ok
}

// Transitions returns every transition definition
func (db *Database) Transitions() []rando.TransitionDef {
	return db.def.Transitions
}

// Start looks up a start location
func (db *Database) Start(name string) (*rando.StartDef, bool) {
	start, ok := db.starts[name]
	return start, ok
}

// Starts returns every start location
func (db *Database) Starts() []rando.StartDef {
	return db.def.Starts
}

// AreaGroup returns the merged area name used for area level grouping
func (db *Database) AreaGroup(area string) string {
	if merged, ok := db.def.AreaGroups[area]; ok {
		return merged
	}
	return area
}

// RoomGroup returns the merged scene name used for room level grouping
func (db *Database) RoomGroup(scene string) string {
	if merged, ok := db.def.RoomGroups[scene]; ok {
		return merged
	}
	return scene
}

// VanillaTransitions returns the default target of every transition that
// declares one
func (db *Database) VanillaTransitions() map[string]string {
	out := make(map[string]string)
	for _, t := range db.def.Transitions {
		if t.Vanilla != "" {
			out[t.Name] = t.Vanilla
		}
	}
	return out
}
