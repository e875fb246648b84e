package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Line represents one ordered line item: a SKU, its quantity, unit price,
// and unit weight. Lines are value objects snapshotted from the shop
// payload at import time; they never change after fulfillment begins.
//
// A line without a SKU is legal (the shop allows custom items); such lines
// are skipped with a warning during catalog matching rather than failing
// the whole order.
type Line struct {
	sku              string
	title            string
	quantity         int
	unitPrice        float64
	unitWeight       kernel.Weight
	requiresShipping bool
}

// NewLine creates a validated order line.
// Quantity must be positive and unit price non-negative.
func NewLine(
	sku string,
	title string,
	quantity int,
	unitPrice float64,
	unitWeight kernel.Weight,
	requiresShipping bool,
) (Line, error) {
	if err := errors.Join(
		validateQuantity(quantity),
		validateUnitPrice(unitPrice),
	); err != nil {
		return Line{}, err
	}

	return Line{
		sku:              sku,
		title:            title,
		quantity:         quantity,
		unitPrice:        unitPrice,
		unitWeight:       unitWeight,
		requiresShipping: requiresShipping,
	}, nil
}

// SKU returns the stock keeping unit, possibly empty.
func (l Line) SKU() string {
	return l.sku
}

// Title returns the human-readable product title.
func (l Line) Title() string {
	return l.title
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the per-unit price in the shop currency.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// UnitWeight returns the per-unit shipping weight.
func (l Line) UnitWeight() kernel.Weight {
	return l.unitWeight
}

// RequiresShipping reports whether this line needs a physical shipment.
func (l Line) RequiresShipping() bool {
	return l.requiresShipping
}

// TotalWeight returns unit weight multiplied by quantity.
func (l Line) TotalWeight() kernel.Weight {
	return l.unitWeight.Multiply(l.quantity)
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

func validateUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%f is negative", unitPrice))
	}
	return nil
}
