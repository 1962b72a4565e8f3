package rando

// Delivery is an item found in one player's world that belongs to another.
// It waits in the owner's outbox until the owner confirms receipt.
type Delivery struct {
	Item Symbol `json:"item"`
	From int    `json:"from"`
}
