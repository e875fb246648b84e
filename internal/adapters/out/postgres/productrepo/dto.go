// Package productrepo persists the product catalog used for inventory
// deduction and sale line matching.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products.
type ProductDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU   string    `gorm:"uniqueIndex"`
	Name  string    ``
	Price float64   ``
	Stock int       ``
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:    p.ID().Bytes(),
		SKU:   p.SKU(),
		Name:  p.Name(),
		Price: p.Price(),
		Stock: p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.SKU, dto.Name, dto.Price, dto.Stock)
}
