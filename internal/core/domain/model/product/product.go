package product

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the NewProduct or RestoreProduct factory functions.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a catalog entry: the SKU order lines are matched against,
// its price, and the on-hand stock count.
//
// Stock may go negative. The shop is the source of truth for what was
// actually sold; a negative count is an oversell signal for the operator,
// not a reason to block fulfillment.
type Product struct {
	id    kernel.UUID
	sku   string
	name  string
	price float64
	stock int

	isConstructed bool
}

// NewProduct creates a validated catalog entry.
func NewProduct(id kernel.UUID, sku, name string, price float64, stock int) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sku) == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}

	return &Product{
		id:            id,
		sku:           sku,
		name:          name,
		price:         price,
		stock:         stock,
		isConstructed: true,
	}, nil
}

// RestoreProduct reconstructs a Product from persistence.
// Used only by repository implementations.
func RestoreProduct(id kernel.UUID, sku, name string, price float64, stock int) (*Product, error) {
	return NewProduct(id, sku, name, price, stock)
}

// Validate ensures the Product was constructed through a factory function.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}

	return nil
}

// ID returns the unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// SKU returns the stock keeping unit.
func (p *Product) SKU() string {
	return p.sku
}

// Name returns the catalog display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the catalog price.
func (p *Product) Price() float64 {
	return p.price
}

// Stock returns the on-hand count, possibly negative after an oversell.
func (p *Product) Stock() int {
	return p.stock
}

// DeductStock removes the sold quantity from stock.
func (p *Product) DeductStock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity must be greater than 0")
	}

	p.stock -= quantity
	return nil
}
