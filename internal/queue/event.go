// Package queue defines message payloads exchanged over the message broker.
package queue

// StockAdjustedEvent is published after a stock movement commits.  It
// carries enough for downstream consumers (reorder alerts, analytics) to
// act without querying the primary database.
type StockAdjustedEvent struct {
	MovementID uint64 `json:"movement_id"`
	ProductID  uint64 `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	Action     string `json:"action"`
	NewStock   int64  `json:"new_stock"`
	AdjustedAt string `json:"adjusted_at"`
}

// OrderCreatedEvent is published when a new order is stored.
type OrderCreatedEvent struct {
	OrderID    uint64  `json:"order_id"`
	CustomerID uint64  `json:"customer_id"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
	CreatedAt  string  `json:"created_at"`
}
