package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// RetryPrintJobCommandHandler requeues a failed print job and returns its
// order to the Fulfilling status so the queue can drive it again.
type RetryPrintJobCommandHandler struct {
	uowFactory PrintQueueUoWFactory
}

// NewRetryPrintJobCommandHandler creates a handler for print job retries.
func NewRetryPrintJobCommandHandler(uowFactory PrintQueueUoWFactory) RetryPrintJobCommandHandler {
	return RetryPrintJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle requeues the job with a fresh attempt budget. Job and order move
// together in one transaction.
func (h *RetryPrintJobCommandHandler) Handle(ctx context.Context, cmd RetryPrintJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	job, err := uow.PrintJobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if err = job.RetryFromFailed(); err != nil {
		return err
	}

	if err = uow.PrintJobRepository().Update(ctx, job); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, job.OrderID())
	if err != nil {
		return err
	}

	if o.Status() == order.Failed {
		if err = o.StartFulfillment(); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
