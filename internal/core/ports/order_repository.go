package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByShopOrderID retrieves an order by the shop-assigned identifier.
	// Returns errs.ObjectNotFoundError when no such order exists; import
	// uses this lookup as its idempotency check.
	GetByShopOrderID(ctx context.Context, shopOrderID string) (*order.Order, error)

	// GetAllInImportedStatus retrieves orders waiting for the fulfillment
	// pipeline, oldest first.
	GetAllInImportedStatus(ctx context.Context) ([]*order.Order, error)
}
