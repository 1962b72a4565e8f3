package generation

import "github.com/KirkDiggler/rpg-rando/internal/entities/rando"

// Event types published on the event bus
const (
	EventAttemptFailed = "rando.attempt_failed"
	EventGenerated     = "rando.generated"
)

// GenerateInput holds one settings block per player. The first player's
// seed drives the run.
type GenerateInput struct {
	Settings  []rando.Settings
	Nicknames []string
}

// GenerateOutput holds the committed results, one per player
type GenerateOutput struct {
	RandoID  string
	Attempts int
	Results  []*rando.Result
}

// GetResultInput identifies a stored player result
type GetResultInput struct {
	RandoID  string
	PlayerID int
}

// GetResultOutput holds a stored player result
type GetResultOutput struct {
	Result *rando.Result
}
