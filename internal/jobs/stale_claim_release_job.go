package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleClaimReleaseJob returns print jobs whose claim lease expired to
// the queue. An agent that crashed mid-print never reports back, so
// without this sweep its claims would stay stuck until the lease check
// inside the next claim query happens to pick them up.
type StaleClaimReleaseJob struct {
	handler commands.ReleaseStaleClaimsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleClaimReleaseJob creates the stale claim sweep job.
func NewStaleClaimReleaseJob(
	handler commands.ReleaseStaleClaimsCommandHandler,
	logger *slog.Logger,
) *StaleClaimReleaseJob {
	return &StaleClaimReleaseJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_claim_release_job"),
	}
}

// Start begins the sweep, running every minute.
func (j *StaleClaimReleaseJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		released, err := j.handler.Handle(ctx, commands.NewReleaseStaleClaimsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale claim release failed", "error", err)
			return
		}

		if released > 0 {
			j.logger.InfoContext(ctx, "Released stale print job claims", "count", released)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale claim release job started (running every minute)")
	return nil
}

// Stop stops the sweep.
func (j *StaleClaimReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale claim release job stopped")
}
