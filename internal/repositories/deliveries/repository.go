// Package deliveries defines the interface for the multiworld item outbox
package deliveries

//go:generate mockgen -destination=mock/mock_repository.go -package=deliveriesmock github.com/KirkDiggler/rpg-rando/internal/repositories/deliveries Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-rando/internal/entities/rando"
)

// Repository keeps two lists per player of a run. Queued entries wait for
// the player to come online, in flight entries wait for a confirmation.
// An entry is always in exactly one of them.
type Repository interface {
	// Enqueue adds a delivery for the owner, in flight when online and queued otherwise
	// Returns errors.InvalidArgument for an empty id or negative player
	// Returns errors.Internal for storage failures
	Enqueue(ctx context.Context, input EnqueueInput) (*EnqueueOutput, error)

	// SetOnline marks a player online or offline
	SetOnline(ctx context.Context, input SetOnlineInput) (*SetOnlineOutput, error)

	// Flush moves queued entries into the in flight list one at a time
	Flush(ctx context.Context, input FlushInput) (*FlushOutput, error)

	// Pending lists in flight then queued entries
	Pending(ctx context.Context, input PendingInput) (*PendingOutput, error)

	// Confirm removes every in flight entry equal to the delivery
	Confirm(ctx context.Context, input ConfirmInput) (*ConfirmOutput, error)
}

// EnqueueInput defines the input for enqueueing a delivery
type EnqueueInput struct {
	RandoID  string
	PlayerID int
	Delivery rando.Delivery
}

// EnqueueOutput defines the output for enqueueing a delivery
type EnqueueOutput struct {
	InFlight bool
}

// SetOnlineInput defines the input for changing a player's presence
type SetOnlineInput struct {
	RandoID  string
	PlayerID int
	Online   bool
}

// SetOnlineOutput defines the output for changing a player's presence
type SetOnlineOutput struct{}

// FlushInput defines the input for flushing a player's queue
type FlushInput struct {
	RandoID  string
	PlayerID int
}

// FlushOutput defines the output for flushing a player's queue
type FlushOutput struct {
	Moved int
}

// PendingInput defines the input for listing a player's deliveries
type PendingInput struct {
	RandoID  string
	PlayerID int
}

// PendingOutput defines the output for listing a player's deliveries
type PendingOutput struct {
	InFlight []rando.Delivery
	Queued   []rando.Delivery
}

// ConfirmInput defines the input for confirming a delivery
type ConfirmInput struct {
	RandoID  string
	PlayerID int
	Delivery rando.Delivery
}

// ConfirmOutput defines the output for confirming a delivery
type ConfirmOutput struct {
	Removed int
}
