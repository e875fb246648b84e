package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
)

// SaleRepository defines the persistence contract for sale records.
type SaleRepository interface {
	// Add persists a new sale record.
	Add(ctx context.Context, aggregate *sale.SaleRecord) error

	// Get retrieves a sale record by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*sale.SaleRecord, error)
}
