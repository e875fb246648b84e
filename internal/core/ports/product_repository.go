package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the catalog.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetBySKU retrieves a product matching the given SKU: exact match
	// first, then a single case-insensitive fallback match. Returns
	// errs.ObjectNotFoundError when neither finds exactly one product.
	GetBySKU(ctx context.Context, sku string) (*product.Product, error)

	// DeductStock atomically subtracts the quantity from a product's
	// stock count. Stock may go negative on oversell.
	DeductStock(ctx context.Context, id kernel.UUID, quantity int) error
}
