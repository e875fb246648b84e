package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkOrderShippedCommandIsNotConstructed = errors.New(
	"MarkOrderShippedCommand must be created via NewMarkOrderShippedCommand constructor",
)

// MarkOrderShippedCommand represents the carrier pickup signal for a
// printed order.
type MarkOrderShippedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderShippedCommand creates a shipped command for the given order.
func NewMarkOrderShippedCommand(orderID kernel.UUID) (MarkOrderShippedCommand, error) {
	cmd := MarkOrderShippedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return MarkOrderShippedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderShippedCommandIsNotConstructed)
}

// OrderID returns the order that shipped.
func (c MarkOrderShippedCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkOrderShippedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
