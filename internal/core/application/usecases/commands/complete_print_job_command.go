package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePrintJobCommandIsNotConstructed = errors.New(
	"CompletePrintJobCommand must be created via NewCompletePrintJobCommand constructor",
)

// CompletePrintJobCommand represents a completion report from a print
// agent: the claimed job either printed or did not.
type CompletePrintJobCommand struct { //nolint:recvcheck //using for validation
	jobID       kernel.UUID
	agent       string
	success     bool
	errorDetail string

	guard guard.ConstructorGuard
}

// NewCompletePrintJobCommand creates a completion report command.
// The error detail is only meaningful for failure reports.
func NewCompletePrintJobCommand(jobID kernel.UUID, agent string, success bool, errorDetail string) (CompletePrintJobCommand, error) {
	cmd := CompletePrintJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setAgent(agent),
	); err != nil {
		return CompletePrintJobCommand{}, err
	}

	cmd.success = success
	cmd.errorDetail = errorDetail
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePrintJobCommand) Validate() error {
	return c.guard.Validate(ErrCompletePrintJobCommandIsNotConstructed)
}

// JobID returns the reported job's identifier.
func (c CompletePrintJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// Agent returns the reporting agent's identity.
func (c CompletePrintJobCommand) Agent() string {
	return c.agent
}

// Success reports whether the print succeeded.
func (c CompletePrintJobCommand) Success() bool {
	return c.success
}

// ErrorDetail returns the agent's failure description, empty on success.
func (c CompletePrintJobCommand) ErrorDetail() string {
	return c.errorDetail
}

func (c *CompletePrintJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CompletePrintJobCommand) setAgent(agent string) error {
	if strings.TrimSpace(agent) == "" {
		return ErrAgentIsRequired
	}

	c.agent = agent
	return nil
}
