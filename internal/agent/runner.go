package agent

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultBatchSize    = 5
)

// jobSource is the server-facing side of the runner, implemented by Client.
type jobSource interface {
	FetchJobs(ctx context.Context, limit int) ([]Job, error)
	Report(ctx context.Context, jobID string, success bool, errorDetail string) error
}

// RunnerConfig tunes the polling loop. Zero values fall back to defaults.
type RunnerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// Runner drives the poll, print, report cycle. Jobs are processed one at
// a time; a single label printer cannot print in parallel anyway, and
// sequential processing keeps the claim lease bookkeeping simple.
type Runner struct {
	source   jobSource
	printer  Printer
	interval time.Duration
	batch    int
	logger   *slog.Logger
}

// NewRunner creates a runner over the given job source and printer.
func NewRunner(source jobSource, printer Printer, cfg RunnerConfig, logger *slog.Logger) (*Runner, error) {
	if source == nil {
		return nil, errs.NewValueIsRequiredError("job source")
	}
	if printer == nil {
		return nil, errs.NewValueIsRequiredError("printer")
	}
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	return &Runner{
		source:   source,
		printer:  printer,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}, nil
}

// Run polls until the context is cancelled. Poll errors are logged and
// retried on the next tick; the agent must survive server restarts.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error("poll cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce claims one batch of jobs, prints each, and reports the outcomes.
func (r *Runner) RunOnce(ctx context.Context) error {
	jobs, err := r.source.FetchJobs(ctx, r.batch)
	if err != nil {
		return err
	}

	if len(jobs) > 0 {
		r.logger.Info("claimed print jobs", "count", len(jobs))
	}

	for _, job := range jobs {
		r.process(ctx, job)
	}

	return nil
}

func (r *Runner) process(ctx context.Context, job Job) {
	if err := r.printer.Print(job); err != nil {
		r.logger.Error("print failed",
			"jobID", job.JobID, "orderID", job.OrderID, "attempt", job.Attempt, "error", err)
		if reportErr := r.source.Report(ctx, job.JobID, false, err.Error()); reportErr != nil {
			r.logger.Error("failure report not delivered", "jobID", job.JobID, "error", reportErr)
		}
		return
	}

	r.logger.Info("label printed", "jobID", job.JobID, "orderID", job.OrderID)
	if err := r.source.Report(ctx, job.JobID, true, ""); err != nil {
		// The claim lease expires server-side and the job requeues, so a
		// lost success report costs at worst a duplicate label.
		r.logger.Error("success report not delivered", "jobID", job.JobID, "error", err)
	}
}
