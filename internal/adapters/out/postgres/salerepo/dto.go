// Package salerepo persists sale records created after a confirmed print.
package salerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"

	"github.com/google/uuid"
)

// SaleRecordDTO represents the database structure for persisting sale records.
type SaleRecordDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;index"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	Lines        []LineDTO  `gorm:"serializer:json;type:jsonb"`
	ShippingCost float64    ``
	CreatedAt    time.Time  ``
}

// TableName specifies the database table name for sale record entities.
func (SaleRecordDTO) TableName() string {
	return "sale_records"
}

// LineDTO represents one sold line in the serialized lines column.
type LineDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

func fromDomain(s *sale.SaleRecord) SaleRecordDTO {
	lines := make([]LineDTO, 0, len(s.Lines()))
	for _, l := range s.Lines() {
		lines = append(lines, LineDTO{
			ProductID: l.ProductID().Bytes(),
			SKU:       l.SKU(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
		})
	}

	var customerID *uuid.UUID
	if id := s.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	return SaleRecordDTO{
		ID:           s.ID().Bytes(),
		OrderID:      s.OrderID().Bytes(),
		CustomerID:   customerID,
		Lines:        lines,
		ShippingCost: s.ShippingCost(),
		CreatedAt:    s.CreatedAt(),
	}
}

func toDomain(dto SaleRecordDTO) (*sale.SaleRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if cErr != nil {
			return nil, cErr
		}
		customerID = &cID
	}

	lines := make([]sale.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		productID, pErr := kernel.UUIDFromBytes(l.ProductID[:])
		if pErr != nil {
			return nil, pErr
		}

		line, lErr := sale.NewLine(productID, l.SKU, l.Quantity, l.UnitPrice)
		if lErr != nil {
			return nil, lErr
		}
		lines = append(lines, line)
	}

	return sale.RestoreSaleRecord(id, orderID, customerID, lines, dto.ShippingCost, dto.CreatedAt)
}
