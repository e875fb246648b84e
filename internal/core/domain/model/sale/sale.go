package sale

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrSaleRecordIsNotConstructed is returned when a SaleRecord instance was
// not created through the NewSaleRecord or RestoreSaleRecord factory
// functions.
var ErrSaleRecordIsNotConstructed = errors.New("SaleRecord must be created via NewSaleRecord constructor")

// Line is one sold catalog product within a sale record. Only order lines
// that matched a catalog product become sale lines; unmatched SKUs are
// recorded as warnings on the order instead.
type Line struct {
	productID kernel.UUID
	sku       string
	quantity  int
	unitPrice float64
}

// NewLine creates a validated sale line for a matched catalog product.
func NewLine(productID kernel.UUID, sku string, quantity int, unitPrice float64) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%f is negative", unitPrice))
	}

	return Line{
		productID: productID,
		sku:       sku,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the matched catalog product's identifier.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// SKU returns the sold SKU.
func (l Line) SKU() string {
	return l.sku
}

// Quantity returns the sold quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the per-unit sale price.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// Subtotal returns quantity times unit price.
func (l Line) Subtotal() float64 {
	return float64(l.quantity) * l.unitPrice
}

// SaleRecord is the bookkeeping entry created once per fulfilled order.
// It captures what was sold at which price, plus the shipping cost the
// customer paid when the chosen rate was not free.
type SaleRecord struct {
	id         kernel.UUID
	orderID    kernel.UUID
	customerID *kernel.UUID

	lines        []Line
	shippingCost float64

	createdAt time.Time

	isConstructed bool
}

// NewSaleRecord creates a sale record for a fulfilled order.
//
// Parameters:
//   - customerID: the upserted customer, nil when the order carried no
//     matchable customer data
//   - lines: catalog-matched order lines; may be empty when every SKU
//     was unmatched
//   - shippingCost: the chosen rate's cost, zero for free shipping
func NewSaleRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID *kernel.UUID,
	lines []Line,
	shippingCost float64,
	now time.Time,
) (*SaleRecord, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return nil, err
		}
	}
	if shippingCost < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipping cost is invalid",
			fmt.Errorf("%f is negative", shippingCost))
	}

	return &SaleRecord{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		lines:         lines,
		shippingCost:  shippingCost,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreSaleRecord reconstructs a SaleRecord from persistence.
// Used only by repository implementations.
func RestoreSaleRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID *kernel.UUID,
	lines []Line,
	shippingCost float64,
	createdAt time.Time,
) (*SaleRecord, error) {
	return NewSaleRecord(id, orderID, customerID, lines, shippingCost, createdAt)
}

// Validate ensures the SaleRecord was constructed through a factory function.
func (s *SaleRecord) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSaleRecordIsNotConstructed
	}

	return nil
}

// ID returns the unique identifier.
func (s *SaleRecord) ID() kernel.UUID {
	return s.id
}

// OrderID returns the fulfilled order's identifier.
func (s *SaleRecord) OrderID() kernel.UUID {
	return s.orderID
}

// CustomerID returns the customer's identifier, nil when unknown.
func (s *SaleRecord) CustomerID() *kernel.UUID {
	return s.customerID
}

// Lines returns the catalog-matched sale lines.
func (s *SaleRecord) Lines() []Line {
	return s.lines
}

// ShippingCost returns the shipping amount charged, zero for free rates.
func (s *SaleRecord) ShippingCost() float64 {
	return s.shippingCost
}

// CreatedAt returns the record creation time.
func (s *SaleRecord) CreatedAt() time.Time {
	return s.createdAt
}

// Total returns the sum of all line subtotals plus shipping.
func (s *SaleRecord) Total() float64 {
	total := s.shippingCost
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}
