package rando

import "slices"

// Settings are the per player generation toggles. The first player's Seed
// drives the whole run.
type Settings struct {
	Seed                   int64    `yaml:"seed" json:"seed"`
	Pools                  []string `yaml:"pools" json:"pools"`
	Skips                  []string `yaml:"skips" json:"skips"`
	RandomizeAreas         bool     `yaml:"randomize_areas" json:"randomize_areas"`
	RandomizeRooms         bool     `yaml:"randomize_rooms" json:"randomize_rooms"`
	ConnectAreas           bool     `yaml:"connect_areas" json:"connect_areas"`
	StartName              string   `yaml:"start_name" json:"start_name"`
	RandomizeStartItems    bool     `yaml:"randomize_start_items" json:"randomize_start_items"`
	RandomizeStartLocation bool     `yaml:"randomize_start_location" json:"randomize_start_location"`
	DuplicateMajorItems    bool     `yaml:"duplicate_major_items" json:"duplicate_major_items"`
	Cursed                 bool     `yaml:"cursed" json:"cursed"`
	CreateSpoilerLog       bool     `yaml:"create_spoiler_log" json:"create_spoiler_log"`
	GrubTolerance          int      `yaml:"grub_tolerance" json:"grub_tolerance"`
	EssenceTolerance       int      `yaml:"essence_tolerance" json:"essence_tolerance"`
}

// RandomizeTransitions reports whether any transition mode is on
func (s *Settings) RandomizeTransitions() bool {
	return s.RandomizeAreas || s.RandomizeRooms
}

// Randomizes reports whether the named pool is shuffled
func (s *Settings) Randomizes(pool string) bool {
	return slices.Contains(s.Pools, pool)
}

// AllowsSkip reports whether the named skip is enabled
func (s *Settings) AllowsSkip(skip string) bool {
	return slices.Contains(s.Skips, skip)
}
