package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrClaimPrintJobsCommandIsNotConstructed = errors.New(
		"ClaimPrintJobsCommand must be created via NewClaimPrintJobsCommand constructor",
	)
	ErrAgentIsRequired = errors.New("agent identity is required")
	ErrLimitIsInvalid  = errors.New("limit must be greater than 0")
)

// ClaimPrintJobsCommand represents one poll from a print agent: claim up
// to limit queued jobs for the named agent.
type ClaimPrintJobsCommand struct { //nolint:recvcheck //using for validation
	agent string
	limit int

	guard guard.ConstructorGuard
}

// NewClaimPrintJobsCommand creates a claim command for the given agent.
// The agent identity is a free-form stable string, e.g. "warehouse-1".
func NewClaimPrintJobsCommand(agent string, limit int) (ClaimPrintJobsCommand, error) {
	cmd := ClaimPrintJobsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgent(agent),
		cmd.setLimit(limit),
	); err != nil {
		return ClaimPrintJobsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimPrintJobsCommand) Validate() error {
	return c.guard.Validate(ErrClaimPrintJobsCommandIsNotConstructed)
}

// Agent returns the claiming agent's identity.
func (c ClaimPrintJobsCommand) Agent() string {
	return c.agent
}

// Limit returns the maximum number of jobs to claim.
func (c ClaimPrintJobsCommand) Limit() int {
	return c.limit
}

func (c *ClaimPrintJobsCommand) setAgent(agent string) error {
	if strings.TrimSpace(agent) == "" {
		return ErrAgentIsRequired
	}

	c.agent = agent
	return nil
}

func (c *ClaimPrintJobsCommand) setLimit(limit int) error {
	if limit <= 0 {
		return ErrLimitIsInvalid
	}

	c.limit = limit
	return nil
}
