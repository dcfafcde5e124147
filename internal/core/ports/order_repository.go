package ports

import (
	"context"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored and loaded whole: lines and history included.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes back every line and appends history entries not yet stored.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order and, inside a transaction, locks its row until the
	// transaction ends so concurrent commands on the same order serialize.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
