package rando

// Cost types for variable cost locations
const (
	CostTypeNone    = ""
	CostTypeGrub    = "grub"
	CostTypeEssence = "essence"
)

// One-way classification of a transition
const (
	OneWayNone     = ""
	OneWayEntrance = "entrance"
	OneWayExit     = "exit"
)

// Default cost caps used when a world file leaves them unset
const (
	DefaultMaxGrubCost    = 23
	DefaultMaxEssenceCost = 900
)

// WorldDef is the static game data loaded from a world file. It is never
// mutated once loaded.
type WorldDef struct {
	Name            string            `yaml:"name" json:"name"`
	DefaultStart    string            `yaml:"default_start" json:"default_start"`
	GrubPool        string            `yaml:"grub_pool" json:"grub_pool"`
	EssencePool     string            `yaml:"essence_pool" json:"essence_pool"`
	SkillPool       string            `yaml:"skill_pool" json:"skill_pool"`
	MaxGrubCost     int               `yaml:"max_grub_cost" json:"max_grub_cost"`
	MaxEssenceCost  int               `yaml:"max_essence_cost" json:"max_essence_cost"`
	CoreMovement    []string          `yaml:"core_movement" json:"core_movement"`
	UnlockHeuristic []string          `yaml:"unlock_heuristic" json:"unlock_heuristic"`
	Items           []ItemDef         `yaml:"items" json:"items"`
	Locations       []LocationDef     `yaml:"locations" json:"locations"`
	Transitions     []TransitionDef   `yaml:"transitions" json:"transitions"`
	Waypoints       []WaypointDef     `yaml:"waypoints" json:"waypoints"`
	Flags           []string          `yaml:"flags" json:"flags"`
	Starts          []StartDef        `yaml:"start_locations" json:"start_locations"`
	StartItems      []StartItemTier   `yaml:"start_items" json:"start_items"`
	AreaGroups      map[string]string `yaml:"area_groups" json:"area_groups"`
	RoomGroups      map[string]string `yaml:"room_groups" json:"room_groups"`
	Cursed          CursedDef         `yaml:"cursed" json:"cursed"`
}

// ItemDef describes one item. Vanilla is the location the item sits at
// when its pool is not randomized; it defaults to the location sharing the
// item's name, and items without one are only ever placed by the engine.
type ItemDef struct {
	Name        string `yaml:"name" json:"name"`
	Pool        string `yaml:"pool" json:"pool"`
	Progression bool   `yaml:"progression" json:"progression"`
	Candidate   bool   `yaml:"candidate" json:"candidate"`
	Major       bool   `yaml:"major" json:"major"`
	Action      string `yaml:"action" json:"action"`
	Essence     int    `yaml:"essence" json:"essence"`
	Vanilla     string `yaml:"vanilla" json:"vanilla"`
	ShopCost    int    `yaml:"shop_cost" json:"shop_cost"`
}

// LocationDef describes a location. Shops accept any number of items.
type LocationDef struct {
	Name     string `yaml:"name" json:"name"`
	Pool     string `yaml:"pool" json:"pool"`
	Area     string `yaml:"area" json:"area"`
	Logic    string `yaml:"logic" json:"logic"`
	Shop     bool   `yaml:"shop" json:"shop"`
	CostType string `yaml:"cost_type" json:"cost_type"`
	Cost     int    `yaml:"cost" json:"cost"`
	Essence  int    `yaml:"essence" json:"essence"`
}

// TransitionDef describes one side of a map transition. Door carries the
// direction class as its prefix (left1, right2, top1, bot1, door1). Vanilla
// is the target the transition leads to when it is not randomized.
type TransitionDef struct {
	Name         string `yaml:"name" json:"name"`
	Scene        string `yaml:"scene" json:"scene"`
	Area         string `yaml:"area" json:"area"`
	Door         string `yaml:"door" json:"door"`
	OneWay       string `yaml:"one_way" json:"one_way"`
	Isolated     bool   `yaml:"isolated" json:"isolated"`
	DeadEnd      bool   `yaml:"dead_end" json:"dead_end"`
	AreaBoundary bool   `yaml:"area_boundary" json:"area_boundary"`
	Logic        string `yaml:"logic" json:"logic"`
	Vanilla      string `yaml:"vanilla" json:"vanilla"`
}

// WaypointDef is a free logical node absorbed into progression as soon as
// its requirement holds, unless rooms are randomized.
type WaypointDef struct {
	Name  string `yaml:"name" json:"name"`
	Logic string `yaml:"logic" json:"logic"`
}

// StartDef is a possible start location
type StartDef struct {
	Name           string `yaml:"name" json:"name"`
	Waypoint       string `yaml:"waypoint" json:"waypoint"`
	AreaTransition string `yaml:"area_transition" json:"area_transition"`
	RoomTransition string `yaml:"room_transition" json:"room_transition"`
	ItemSafe       bool   `yaml:"item_safe" json:"item_safe"`
	AreaSafe       bool   `yaml:"area_safe" json:"area_safe"`
	RoomSafe       bool   `yaml:"room_safe" json:"room_safe"`
}

// StartItemTier is one draw of the start item randomizer. Exactly one of
// Items or Action selects the candidates. Between Min and Max items are
// taken, never more than Cap.
type StartItemTier struct {
	Name   string   `yaml:"name" json:"name"`
	Items  []string `yaml:"items" json:"items"`
	Action string   `yaml:"action" json:"action"`
	Min    int      `yaml:"min" json:"min"`
	Max    int      `yaml:"max" json:"max"`
	Cap    int      `yaml:"cap" json:"cap"`
}

// CursedDef configures cursed mode
type CursedDef struct {
	Remove      []string `yaml:"remove" json:"remove"`
	FillerPools []string `yaml:"filler_pools" json:"filler_pools"`
	Filler      string   `yaml:"filler" json:"filler"`
	Pool        string   `yaml:"pool" json:"pool"`
}
