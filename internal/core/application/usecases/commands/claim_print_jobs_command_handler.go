package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ClaimedPrintJob is one job handed to an agent: the claim plus the
// label payload the agent must print.
type ClaimedPrintJob struct {
	JobID       kernel.UUID
	OrderID     kernel.UUID
	LabelData   []byte
	LabelFormat shipment.LabelFormat
	Attempt     int
}

// ClaimPrintJobsCommandHandler hands queued print jobs to polling agents.
//
// The claim itself is a single atomic conditional update in the
// repository, so two agents polling at the same moment can never receive
// the same job. This handler only loads the label payloads for whatever
// the claim returned.
type ClaimPrintJobsCommandHandler struct {
	uowFactory PrintQueueUoWFactory
	lease      time.Duration
}

// NewClaimPrintJobsCommandHandler creates a handler for print job claims.
// The lease bounds how long a claim blocks other agents.
func NewClaimPrintJobsCommandHandler(uowFactory PrintQueueUoWFactory, lease time.Duration) ClaimPrintJobsCommandHandler {
	return ClaimPrintJobsCommandHandler{
		uowFactory: uowFactory,
		lease:      lease,
	}
}

// Handle claims jobs for the agent and returns them with label payloads.
// An empty result is the normal idle answer, not an error.
func (h *ClaimPrintJobsCommandHandler) Handle(ctx context.Context, cmd ClaimPrintJobsCommand) ([]ClaimedPrintJob, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs, err := uow.PrintJobRepository().ClaimQueued(ctx, cmd.Agent(), cmd.Limit(), h.lease, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	claimed := make([]ClaimedPrintJob, 0, len(jobs))
	for _, job := range jobs {
		s, shipErr := uow.ShipmentRepository().Get(ctx, job.ShipmentID())
		if shipErr != nil {
			return nil, shipErr
		}

		claimed = append(claimed, ClaimedPrintJob{
			JobID:       job.ID(),
			OrderID:     job.OrderID(),
			LabelData:   s.LabelData(),
			LabelFormat: s.LabelFormat(),
			Attempt:     job.Attempts(),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
