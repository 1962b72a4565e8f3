package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
)

const (
	// TestRandoID is the default run ID for test fixtures
	TestRandoID = "rando_test"

	// TestSeed is the default seed for test settings
	TestSeed = 12345
)

// TestCreatedAt is the fixed creation time stamped on fixture results
var TestCreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// CreateTestResult creates one player's result sharing the given placements
func CreateTestResult(randoID string, player, players int, placements map[rando.Symbol]rando.Symbol) *rando.Result {
	return &rando.Result{
		RandoID:        randoID,
		PlayerID:       player,
		Players:        players,
		Seed:           TestSeed,
		Attempts:       1,
		Settings:       DefaultSettings(TestSeed, "Skill", "Key", "Charm", "Geo"),
		ItemPlacements: placements,
		CreatedAt:      TestCreatedAt,
	}
}

// CreateTestRun creates the results of every player of a run. Each result
// carries the full multiworld placement map, as generation does.
func CreateTestRun(randoID string, players int, placements map[rando.Symbol]rando.Symbol) []*rando.Result {
	run := make([]*rando.Result, players)
	for p := range players {
		run[p] = CreateTestResult(randoID, p, players, placements)
	}
	return run
}
