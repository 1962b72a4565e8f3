package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
	"github.com/KirkDiggler/rpg-rando/internal/logic"
)

// ToyWorldYAML is the three location world: A is free, B needs Key and C
// needs Sword
const ToyWorldYAML = `
name: toy
items:
  - {name: Key, pool: Stuff, progression: true, candidate: true, vanilla: B}
  - {name: Sword, pool: Stuff, progression: true, candidate: true, vanilla: C}
  - {name: Junk, pool: Stuff, vanilla: A}
locations:
  - {name: A, pool: Stuff, area: Town}
  - {name: B, pool: Stuff, area: Town, logic: Key}
  - {name: C, pool: Stuff, area: Town, logic: Sword}
`

// HallownestYAML is a small item world with every location feature the
// engine handles: shops, grub and essence costs, waypoints, start tiers
// and cursed filler
const HallownestYAML = `
name: hallownest
default_start: Kings_Pass
grub_pool: Grub
essence_pool: Root
skill_pool: Skill
max_grub_cost: 4
max_essence_cost: 300
core_movement: [Claw, Dash]
unlock_heuristic: [Claw, Dash, Wings, Lantern]
items:
  - {name: Claw, pool: Skill, progression: true, candidate: true, major: true}
  - {name: Dash, pool: Skill, progression: true, candidate: true, major: true}
  - {name: Wings, pool: Skill, progression: true, candidate: true, major: true}
  - {name: Lantern, pool: Key, progression: true, candidate: true, vanilla: Sly, shop_cost: 1800}
  - {name: Simple_Key, pool: Key, progression: true, vanilla: Sly_2, shop_cost: 950}
  - {name: City_Crest, pool: Key, progression: true}
  - {name: Charm_Compass, pool: Charm, action: charm, vanilla: Salubra, shop_cost: 220}
  - {name: Charm_Swarm, pool: Charm, action: charm, vanilla: Salubra_2, shop_cost: 300}
  - {name: Charm_Heart, pool: Charm, action: charm}
  - {name: Charm_Strike, pool: Charm, action: charm}
  - {name: Geo_A, pool: Geo}
  - {name: Geo_B, pool: Geo}
  - {name: Geo_C, pool: Geo}
  - {name: Geo_D, pool: Geo}
  - {name: Geo_E, pool: Geo}
  - {name: Geo_F, pool: Geo}
  - {name: Geo_Grubfather, pool: Geo, vanilla: Grubfather}
  - {name: Geo_Seer, pool: Geo, vanilla: Seer}
  - {name: Grub_1, pool: Grub}
  - {name: Grub_2, pool: Grub}
  - {name: Grub_3, pool: Grub}
  - {name: Grub_4, pool: Grub}
  - {name: Root_1, pool: Root, essence: 100}
  - {name: Root_2, pool: Root, essence: 150}
  - {name: "1_Geo", pool: Filler}
locations:
  - {name: Claw, pool: Skill, area: Greenpath}
  - {name: Dash, pool: Skill, area: Greenpath, logic: Claw}
  - {name: Wings, pool: Skill, area: Abyss, logic: Claw + Dash}
  - {name: City_Crest, pool: Key, area: Crossroads, logic: Upper_Hub + Wings}
  - {name: Charm_Heart, pool: Charm, area: Fungal, logic: Dash}
  - {name: Charm_Strike, pool: Charm, area: Abyss, logic: Wings + Lantern}
  - {name: Geo_A, pool: Geo, area: Dirtmouth}
  - {name: Geo_B, pool: Geo, area: Greenpath, logic: Claw}
  - {name: Geo_C, pool: Geo, area: Fungal, logic: Dash}
  - {name: Geo_D, pool: Geo, area: Abyss, logic: Wings}
  - {name: Geo_E, pool: Geo, area: Abyss, logic: Lantern + Dash}
  - {name: Geo_F, pool: Geo, area: City, logic: City_Crest | Simple_Key + Wings}
  - {name: Grub_1, pool: Grub, area: Dirtmouth}
  - {name: Grub_2, pool: Grub, area: Greenpath, logic: Claw}
  - {name: Grub_3, pool: Grub, area: Fungal, logic: Dash}
  - {name: Grub_4, pool: Grub, area: City, logic: Simple_Key}
  - {name: Root_1, pool: Root, area: Greenpath, logic: Claw}
  - {name: Root_2, pool: Root, area: Abyss, logic: Wings}
  - {name: Grubfather, pool: Geo, area: Crossroads, cost_type: grub, cost: 2}
  - {name: Seer, pool: Geo, area: Dirtmouth, cost_type: essence, cost: 150}
  - {name: Hornet, pool: Boss, area: Greenpath, logic: Claw, essence: 50}
  - {name: Sly, pool: Shop, area: Dirtmouth, shop: true}
  - {name: Sly_2, pool: Shop, area: Dirtmouth, shop: true, logic: Upper_Hub}
  - {name: Salubra, pool: Shop, area: Crossroads, shop: true, logic: Claw | Dash}
  - {name: Salubra_2, pool: Shop, area: Crossroads, shop: true, logic: Claw}
waypoints:
  - {name: Upper_Hub, logic: Claw | Wings}
flags: [SHADESKIPS, MILDSKIPS]
start_locations:
  - {name: Kings_Pass, item_safe: true, area_safe: true, room_safe: true}
  - {name: Dirtmouth_Well, item_safe: true}
  - {name: Upper_Crossroads, waypoint: Upper_Hub}
start_items:
  - {name: movement, items: [Claw, Dash], min: 1, max: 1}
  - {name: movement_2, items: [Dash, Wings], min: 0, max: 1}
  - {name: charms, action: charm, min: 1, max: 2}
cursed:
  remove: [Charm_Strike]
  filler_pools: [Geo]
  filler: "1_Geo"
`

// TransitWorldYAML is a five room world whose transitions can be shuffled
// by area or by room. Every transition carries its vanilla target.
const TransitWorldYAML = `
name: transit
default_start: Town_Start
skill_pool: Skill
core_movement: [Claw, Dash]
unlock_heuristic: [Claw, Dash]
items:
  - {name: Claw, pool: Skill, progression: true, candidate: true, major: true, vanilla: Town_Chest}
  - {name: Dash, pool: Skill, progression: true, candidate: true, major: true, vanilla: Cross_Chest}
  - {name: Geo_Green, pool: Geo, vanilla: Green_Chest}
  - {name: Geo_Fungal, pool: Geo, vanilla: Fungal_Chest}
  - {name: Geo_Cross, pool: Geo, vanilla: Cross_Ledge}
locations:
  - {name: Town_Chest, pool: Skill, area: Town, logic: "Town[right1] | Town[bot1]"}
  - {name: Cross_Chest, pool: Skill, area: Crossroads, logic: "Cross_01[left1] | Cross_01[top1] | Cross_01[right1]"}
  - {name: Cross_Ledge, pool: Geo, area: Crossroads, logic: "Cross_02[left1] | Cross_02[right1] | Cross_02[bot1]"}
  - {name: Green_Chest, pool: Geo, area: Greenpath, logic: "Green[left1] | Green[right1]"}
  - {name: Fungal_Chest, pool: Geo, area: Fungal, logic: "Fungal[top1] | Fungal[left1]"}
transitions:
  - {name: "Town[right1]", scene: Town, area: Town, door: right1, area_boundary: true, logic: "Town[bot1]", vanilla: "Cross_01[left1]"}
  - {name: "Town[bot1]", scene: Town, area: Town, door: bot1, area_boundary: true, logic: "Town[right1]", vanilla: "Fungal[top1]"}
  - {name: "Cross_01[left1]", scene: Cross_01, area: Crossroads, door: left1, area_boundary: true, logic: "Cross_01[top1] | Cross_01[right1]", vanilla: "Town[right1]"}
  - {name: "Cross_01[top1]", scene: Cross_01, area: Crossroads, door: top1, area_boundary: true, logic: "(Cross_01[left1] | Cross_01[right1]) + Claw", vanilla: "Cross_02[bot1]"}
  - {name: "Cross_01[right1]", scene: Cross_01, area: Crossroads, door: right1, logic: "Cross_01[left1] | Cross_01[top1]", vanilla: "Cross_02[left1]"}
  - {name: "Cross_02[left1]", scene: Cross_02, area: Crossroads, door: left1, logic: "Cross_02[right1] | Cross_02[bot1]", vanilla: "Cross_01[right1]"}
  - {name: "Cross_02[right1]", scene: Cross_02, area: Crossroads, door: right1, area_boundary: true, logic: "Cross_02[left1] | Cross_02[bot1]", vanilla: "Green[left1]"}
  - {name: "Cross_02[bot1]", scene: Cross_02, area: Crossroads, door: bot1, area_boundary: true, logic: "Cross_02[left1] | Cross_02[right1]", vanilla: "Cross_01[top1]"}
  - {name: "Green[left1]", scene: Green, area: Greenpath, door: left1, area_boundary: true, logic: "Green[right1]", vanilla: "Cross_02[right1]"}
  - {name: "Green[right1]", scene: Green, area: Greenpath, door: right1, area_boundary: true, logic: "Green[left1] + Dash", vanilla: "Fungal[left1]"}
  - {name: "Fungal[top1]", scene: Fungal, area: Fungal, door: top1, area_boundary: true, logic: "Fungal[left1] + Claw", vanilla: "Town[bot1]"}
  - {name: "Fungal[left1]", scene: Fungal, area: Fungal, door: left1, area_boundary: true, logic: "Fungal[top1]", vanilla: "Green[right1]"}
  - {name: "Fungal[bot1]", scene: Fungal, area: Fungal, door: bot1, one_way: entrance, area_boundary: true, logic: "Fungal[top1] | Fungal[left1]", vanilla: "Green[top1]"}
  - {name: "Green[top1]", scene: Green, area: Greenpath, door: top1, one_way: exit, area_boundary: true, logic: "FALSE"}
start_locations:
  - {name: Town_Start, area_transition: "Town[right1]", room_transition: "Town[right1]", item_safe: true, area_safe: true, room_safe: true}
`

// OneWayWorldYAML has two one-way entrances, two one-way exits and nothing
// else
const OneWayWorldYAML = `
name: oneway
transitions:
  - {name: "Cliff[right1]", scene: Cliff, area: Cliffs, door: right1, one_way: entrance, area_boundary: true}
  - {name: "Cliff[right2]", scene: Cliff, area: Cliffs, door: right2, one_way: entrance, area_boundary: true}
  - {name: "Basin[left1]", scene: Basin, area: Basin, door: left1, one_way: exit, area_boundary: true, logic: "FALSE"}
  - {name: "Basin[top1]", scene: Basin, area: Basin, door: top1, one_way: exit, area_boundary: true, logic: "FALSE"}
`

// LoadWorld parses one of the fixture worlds
func LoadWorld(t *testing.T, yaml string) *logic.Database {
	t.Helper()
	db, err := logic.ParseWorld([]byte(yaml))
	require.NoError(t, err, "failed to parse fixture world")
	return db
}

// DefaultSettings randomizes the given pools with spoiler output on
func DefaultSettings(seed int64, pools ...string) rando.Settings {
	return rando.Settings{
		Seed:             seed,
		Pools:            pools,
		CreateSpoilerLog: true,
	}
}
