package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrReleaseStaleClaimsCommandIsNotConstructed = errors.New(
	"ReleaseStaleClaimsCommand must be created via NewReleaseStaleClaimsCommand constructor",
)

// ReleaseStaleClaimsCommand represents one sweep over the print queue:
// every claim that outlived its lease goes back to the queue or, when
// its attempt budget is spent, parks in Failed.
type ReleaseStaleClaimsCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewReleaseStaleClaimsCommand creates a sweep command.
func NewReleaseStaleClaimsCommand() ReleaseStaleClaimsCommand {
	return ReleaseStaleClaimsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStaleClaimsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleClaimsCommandIsNotConstructed)
}
