package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrFulfillOrderCommandIsNotConstructed = errors.New(
	"FulfillOrderCommand must be created via NewFulfillOrderCommand constructor",
)

// FulfillOrderCommand represents a request to run the fulfillment
// pipeline for one order: pick a box, shop a rate, buy a label, and
// queue the print job.
//
// Running it against a Failed order retries the pipeline; running it
// against an order whose label already exists just makes sure the print
// job is queued.
type FulfillOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFulfillOrderCommand creates a command to fulfill the given order.
func NewFulfillOrderCommand(orderID kernel.UUID) (FulfillOrderCommand, error) {
	cmd := FulfillOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return FulfillOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FulfillOrderCommand) Validate() error {
	return c.guard.Validate(ErrFulfillOrderCommandIsNotConstructed)
}

// OrderID returns the order to fulfill.
func (c FulfillOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *FulfillOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
