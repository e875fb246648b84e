package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/kernel"
)

// BoxRepository defines the persistence contract for box configuration.
type BoxRepository interface {
	// Add persists a new box.
	Add(ctx context.Context, aggregate *box.Box) error

	// Update persists changes to an existing box.
	Update(ctx context.Context, aggregate *box.Box) error

	// Get retrieves a box by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*box.Box, error)

	// GetAllActive retrieves active boxes ordered by priority.
	// The order matters: box selection uses it as the final tie-break.
	GetAllActive(ctx context.Context) ([]*box.Box, error)
}
