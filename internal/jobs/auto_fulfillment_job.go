package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// AutoFulfillmentJob periodically sweeps the imported order backlog and
// runs the fulfillment pipeline for each order. Orders that fail move to
// the Failed status and stay out of the backlog until an operator retries
// them, so the sweep never spins on a broken order.
type AutoFulfillmentJob struct {
	backlog queries.GetImportedOrdersQueryHandler
	handler commands.FulfillOrderCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAutoFulfillmentJob creates the backlog sweep job.
func NewAutoFulfillmentJob(
	backlog queries.GetImportedOrdersQueryHandler,
	handler commands.FulfillOrderCommandHandler,
	logger *slog.Logger,
) *AutoFulfillmentJob {
	return &AutoFulfillmentJob{
		backlog: backlog,
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "auto_fulfillment_job"),
	}
}

// Start begins the sweep, running every 30 seconds.
func (j *AutoFulfillmentJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		j.sweep(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto fulfillment job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *AutoFulfillmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto fulfillment job stopped")
}

func (j *AutoFulfillmentJob) sweep(ctx context.Context) {
	backlog, err := j.backlog.Handle(ctx, queries.NewGetImportedOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Backlog listing failed", "error", err)
		return
	}

	for _, row := range backlog {
		cmd, err := commands.NewFulfillOrderCommand(row.ID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Fulfill command rejected", "orderID", row.ID.String(), "error", err)
			continue
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			// The order carries its own failure classification now; this
			// log is only the operational trace.
			j.logger.ErrorContext(ctx, "Order fulfillment failed",
				"orderID", row.ID.String(), "shopOrderID", row.ShopOrderID, "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Order fulfilled",
			"orderID", row.ID.String(), "shopOrderID", row.ShopOrderID)
	}
}
