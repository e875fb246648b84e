package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRetryPrintJobCommandIsNotConstructed = errors.New(
	"RetryPrintJobCommand must be created via NewRetryPrintJobCommand constructor",
)

// RetryPrintJobCommand represents an operator request to requeue a failed
// print job with a fresh attempt budget.
type RetryPrintJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRetryPrintJobCommand creates a retry command for the given job.
func NewRetryPrintJobCommand(jobID kernel.UUID) (RetryPrintJobCommand, error) {
	cmd := RetryPrintJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setJobID(jobID); err != nil {
		return RetryPrintJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryPrintJobCommand) Validate() error {
	return c.guard.Validate(ErrRetryPrintJobCommandIsNotConstructed)
}

// JobID returns the job to retry.
func (c RetryPrintJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *RetryPrintJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
