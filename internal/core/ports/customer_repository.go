package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	// Add persists a new customer.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Get retrieves a customer by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// GetByExternalID retrieves a customer by the shop-assigned ID.
	// Returns errs.ObjectNotFoundError when no such customer exists.
	GetByExternalID(ctx context.Context, externalID string) (*customer.Customer, error)

	// GetByEmail retrieves a customer by normalized email match.
	// Returns errs.ObjectNotFoundError when no such customer exists.
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
}
