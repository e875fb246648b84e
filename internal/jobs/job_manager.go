package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoFulfillmentJob   *AutoFulfillmentJob
	staleClaimReleaseJob *StaleClaimReleaseJob

	autoFulfillEnabled bool
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command and query handlers as dependencies to wire up the job
// execution. When autoFulfillEnabled is false the backlog sweep stays
// off and imported orders wait for an operator to trigger fulfillment.
func NewJobManager(
	backlog queries.GetImportedOrdersQueryHandler,
	fulfillHandler commands.FulfillOrderCommandHandler,
	releaseHandler commands.ReleaseStaleClaimsCommandHandler,
	autoFulfillEnabled bool,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoFulfillmentJob:   NewAutoFulfillmentJob(backlog, fulfillHandler, logger),
		staleClaimReleaseJob: NewStaleClaimReleaseJob(releaseHandler, logger),
		autoFulfillEnabled:   autoFulfillEnabled,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleClaimReleaseJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale claim release job: %w", err)
	}

	if !jm.autoFulfillEnabled {
		return nil
	}

	if err := jm.autoFulfillmentJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleClaimReleaseJob.Stop()
		return fmt.Errorf("failed to start auto fulfillment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.autoFulfillEnabled {
		jm.autoFulfillmentJob.Stop()
	}
	jm.staleClaimReleaseJob.Stop()
}
