package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/printjob"
)

// PrintJobRepository defines the persistence contract for print jobs.
//
// ClaimQueued is the concurrency-critical operation: two agents polling
// at the same moment must never receive the same job, so implementations
// claim with a single atomic conditional update rather than read-then-write.
type PrintJobRepository interface {
	// Add persists a new print job.
	Add(ctx context.Context, aggregate *printjob.PrintJob) error

	// Update persists changes to an existing print job.
	Update(ctx context.Context, aggregate *printjob.PrintJob) error

	// Get retrieves a print job by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*printjob.PrintJob, error)

	// GetByShipmentID retrieves the print job for a shipment.
	// Returns errs.ObjectNotFoundError when none exists; fulfillment uses
	// this to avoid enqueueing the same label twice.
	GetByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*printjob.PrintJob, error)

	// ClaimQueued atomically claims up to limit claimable jobs for the
	// given agent. A job is claimable when queued, or when claimed but
	// its lease expired at least lease ago. Returns the claimed jobs.
	ClaimQueued(ctx context.Context, agent string, limit int, lease time.Duration, now time.Time) ([]*printjob.PrintJob, error)

	// GetExpiredClaims retrieves claimed jobs whose lease expired before
	// now minus lease. Used by the stale-claim sweeper.
	GetExpiredClaims(ctx context.Context, lease time.Duration, now time.Time) ([]*printjob.PrintJob, error)
}
