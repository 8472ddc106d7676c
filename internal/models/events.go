package models

// CartDisposalEvent is published after an order transaction commits; the
// subscriber deletes the source cart outside the transaction.
type CartDisposalEvent struct {
	CartID int `json:"cart_id"`
}
