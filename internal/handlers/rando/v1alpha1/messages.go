package v1alpha1

import "github.com/KirkDiggler/rpg-rando/internal/entities/rando"

// GenerateRequest holds one settings block per player
type GenerateRequest struct {
	Settings  []rando.Settings `json:"settings"`
	Nicknames []string         `json:"nicknames,omitempty"`
}

// GenerateResponse holds the stored run
type GenerateResponse struct {
	RandoID  string          `json:"rando_id"`
	Attempts int             `json:"attempts"`
	Results  []*rando.Result `json:"results"`
}

// GetResultRequest identifies a player's result
type GetResultRequest struct {
	RandoID  string `json:"rando_id"`
	PlayerID int    `json:"player_id"`
}

// GetResultResponse holds a player's result
type GetResultResponse struct {
	Result *rando.Result `json:"result"`
}

// SendRequest reports a checked location
type SendRequest struct {
	RandoID  string `json:"rando_id"`
	PlayerID int    `json:"player_id"`
	Location string `json:"location"`
	Item     string `json:"item,omitempty"`
}

// SentItem is one item routed to its owner
type SentItem struct {
	Owner    int            `json:"owner"`
	Delivery rando.Delivery `json:"delivery"`
	InFlight bool           `json:"in_flight"`
}

// SendResponse lists what was found and what was routed
type SendResponse struct {
	Found []rando.Symbol `json:"found"`
	Sent  []SentItem     `json:"sent,omitempty"`
}

// PlayerRequest identifies a player of a run
type PlayerRequest struct {
	RandoID  string `json:"rando_id"`
	PlayerID int    `json:"player_id"`
}

// JoinResponse lists what the player still has to receive
type JoinResponse struct {
	Moved    int              `json:"moved"`
	InFlight []rando.Delivery `json:"in_flight"`
}

// LeaveResponse is empty
type LeaveResponse struct{}

// PendingResponse lists in flight entries then queued ones
type PendingResponse struct {
	InFlight []rando.Delivery `json:"in_flight"`
	Queued   []rando.Delivery `json:"queued"`
}

// ConfirmRequest acknowledges a received item
type ConfirmRequest struct {
	RandoID  string `json:"rando_id"`
	PlayerID int    `json:"player_id"`
	Item     string `json:"item"`
	From     int    `json:"from"`
}

// ConfirmResponse reports how many entries were cleared
type ConfirmResponse struct {
	Removed int `json:"removed"`
}
