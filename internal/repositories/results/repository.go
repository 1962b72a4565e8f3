// Package results defines the interface for generated rando persistence
package results

//go:generate mockgen -destination=mock/mock_repository.go -package=resultsmock github.com/KirkDiggler/rpg-rando/internal/repositories/results Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
)

// Repository stores the per player results of a generation run
type Repository interface {
	// Save stores every player's result under the run's rando id
	// Returns errors.InvalidArgument when the results are empty or disagree on the id
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves one player's result
	// Returns errors.InvalidArgument for an empty id or negative player
	// Returns errors.NotFound if the run or player doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}

// SaveInput defines the input for saving a run
type SaveInput struct {
	Results []*rando.Result
}

// SaveOutput defines the output for saving a run
type SaveOutput struct {
	RandoID string
}

// GetInput defines the input for getting a player's result
type GetInput struct {
	RandoID  string
	PlayerID int
}

// GetOutput defines the output for getting a player's result
type GetOutput struct {
	Result *rando.Result
}
