// Package ports defines the contracts between the fulfillment core and its infrastructure:
// repositories, the unit of work, and the outbound notification port.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Items are stored with their order and are never updated.
type OrderRepository interface {
	// Add persists a new order with its item snapshots.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, shipment, and payable changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and row-locks it until the transaction ends,
	// serializing concurrent status updates of the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetManyForUpdate row-locks the orders in a stable (id) order to avoid deadlocks.
	// Missing ids are reported as ObjectNotFoundError.
	GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// ListUnbatchedBillable returns Unbatched orders whose status means the printer has work
	// to be paid for (LabelPurchased or later, not Cancelled), oldest first.
	// A non-positive limit means no limit.
	ListUnbatchedBillable(ctx context.Context, limit int) ([]*order.Order, error)
}
