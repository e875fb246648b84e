package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
)

// ReleaseStaleClaimsCommandHandler sweeps claims whose lease expired
// without a completion report, returning the jobs to the queue. A job
// whose attempt budget ran out fails its order instead.
type ReleaseStaleClaimsCommandHandler struct {
	uowFactory  PrintQueueUoWFactory
	lease       time.Duration
	maxAttempts int
}

// NewReleaseStaleClaimsCommandHandler creates a handler for the sweep.
func NewReleaseStaleClaimsCommandHandler(
	uowFactory PrintQueueUoWFactory,
	lease time.Duration,
	maxAttempts int,
) ReleaseStaleClaimsCommandHandler {
	return ReleaseStaleClaimsCommandHandler{
		uowFactory:  uowFactory,
		lease:       lease,
		maxAttempts: maxAttempts,
	}
}

// Handle releases every expired claim and returns how many were swept.
func (h *ReleaseStaleClaimsCommandHandler) Handle(ctx context.Context, cmd ReleaseStaleClaimsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.PrintJobRepository().GetExpiredClaims(ctx, h.lease, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	released := 0
	for _, job := range expired {
		if err = job.Release(h.maxAttempts); err != nil {
			return 0, err
		}
		if err = uow.PrintJobRepository().Update(ctx, job); err != nil {
			return 0, err
		}

		if job.State() == printjob.StateFailed {
			o, orderErr := uow.OrderRepository().Get(ctx, job.OrderID())
			if orderErr != nil {
				return 0, orderErr
			}
			if err = o.Fail(order.FailurePrint, job.ErrorDetail()); err != nil {
				return 0, err
			}
			if err = uow.OrderRepository().Update(ctx, o); err != nil {
				return 0, err
			}
		}

		released++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return released, nil
}
