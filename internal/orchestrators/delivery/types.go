package delivery

import "github.com/KirkDiggler/rpg-rando/internal/entities/rando"

// SendInput reports that a player checked a location in their world
type SendInput struct {
	RandoID  string
	PlayerID int
	Location string

	// Item narrows a shop to the item bought. Empty sends everything at the location.
	Item string
}

// SendOutput lists what the location held and what was routed to other players
type SendOutput struct {
	Found []rando.Symbol
	Sent  []SentItem
}

// SentItem is one delivery routed to its owner
type SentItem struct {
	Owner    int
	Delivery rando.Delivery
	InFlight bool
}

// JoinInput marks a player online
type JoinInput struct {
	RandoID  string
	PlayerID int
}

// JoinOutput holds everything the player still has to receive
type JoinOutput struct {
	Moved    int
	InFlight []rando.Delivery
}

// LeaveInput marks a player offline
type LeaveInput struct {
	RandoID  string
	PlayerID int
}

// LeaveOutput is empty
type LeaveOutput struct{}

// PendingInput identifies a player's outbox
type PendingInput struct {
	RandoID  string
	PlayerID int
}

// PendingOutput lists in flight entries first, then queued ones
type PendingOutput struct {
	InFlight []rando.Delivery
	Queued   []rando.Delivery
}

// ConfirmInput acknowledges an item a player received
type ConfirmInput struct {
	RandoID  string
	PlayerID int
	Item     string
	From     int
}

// ConfirmOutput reports how many in flight entries were cleared
type ConfirmOutput struct {
	Removed int
}
