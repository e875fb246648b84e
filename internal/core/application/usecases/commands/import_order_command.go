package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrImportOrderCommandIsNotConstructed = errors.New(
		"ImportOrderCommand must be created via NewImportOrderCommand constructor",
	)
	ErrShopOrderIDIsRequired = errors.New("shop order ID is required")
	ErrLinesAreRequired      = errors.New("at least one line is required")
)

// ImportOrderCommand represents a shop order payload to ingest.
// The shop order ID is the idempotency key: importing the same ID again
// updates the stored order instead of duplicating it.
//
// Example:
//
//	cmd, err := NewImportOrderCommand("4411", "#1027", customerInfo, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid payload: %w", err)
//	}
//
//	handler := NewImportOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type ImportOrderCommand struct { //nolint:recvcheck //using for validation
	shopOrderID string
	name        string
	customer    order.CustomerInfo
	lines       []order.Line

	guard guard.ConstructorGuard
}

// NewImportOrderCommand creates a command to ingest one shop order.
// Validates that the shop order ID is present and at least one line exists.
func NewImportOrderCommand(
	shopOrderID string,
	name string,
	customer order.CustomerInfo,
	lines []order.Line,
) (ImportOrderCommand, error) {
	cmd := ImportOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShopOrderID(shopOrderID),
		cmd.setLines(lines),
	); err != nil {
		return ImportOrderCommand{}, err
	}

	cmd.name = name
	cmd.customer = customer
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportOrderCommand) Validate() error {
	return c.guard.Validate(ErrImportOrderCommandIsNotConstructed)
}

// ShopOrderID returns the shop-assigned order identifier.
func (c ImportOrderCommand) ShopOrderID() string {
	return c.shopOrderID
}

// Name returns the shop display name, possibly empty.
func (c ImportOrderCommand) Name() string {
	return c.name
}

// Customer returns the customer snapshot from the payload.
func (c ImportOrderCommand) Customer() order.CustomerInfo {
	return c.customer
}

// Lines returns the order lines from the payload.
func (c ImportOrderCommand) Lines() []order.Line {
	return c.lines
}

func (c *ImportOrderCommand) setShopOrderID(shopOrderID string) error {
	if strings.TrimSpace(shopOrderID) == "" {
		return ErrShopOrderIDIsRequired
	}

	c.shopOrderID = shopOrderID
	return nil
}

func (c *ImportOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	c.lines = lines
	return nil
}
