// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It handles the conversion between the order aggregate and
// its relational representation, serializing lines and warnings as JSON.
package orderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by shop order ID for idempotent webhook imports and by status for
// the auto-fulfillment sweep.
type OrderDTO struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ShopOrderID       string      `gorm:"uniqueIndex"`
	Name              string      ``
	Customer          CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Lines             []LineDTO   `gorm:"serializer:json;type:jsonb"`
	Status            int         `gorm:"index"`
	FailureKind       string      ``
	FailureDetail     string      ``
	Warnings          []string    `gorm:"serializer:json;type:jsonb"`
	ShipmentID        *uuid.UUID  `gorm:"type:uuid"`
	SaleRecordID      *uuid.UUID  `gorm:"type:uuid"`
	InventoryDeducted bool        ``
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the customer snapshot embedded within the order row.
type CustomerDTO struct {
	ExternalID string
	Name       string
	Email      string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	Zip        string
	Country    string
}

// LineDTO represents one order line in the serialized lines column.
type LineDTO struct {
	SKU              string  `json:"sku"`
	Title            string  `json:"title"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	UnitWeightGrams  float64 `json:"unit_weight_grams"`
	RequiresShipping bool    `json:"requires_shipping"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	lines := make([]LineDTO, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, LineDTO{
			SKU:              l.SKU(),
			Title:            l.Title(),
			Quantity:         l.Quantity(),
			UnitPrice:        l.UnitPrice(),
			UnitWeightGrams:  l.UnitWeight().Grams(),
			RequiresShipping: l.RequiresShipping(),
		})
	}

	var shipmentID *uuid.UUID
	if id := o.ShipmentID(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	var saleRecordID *uuid.UUID
	if id := o.SaleRecordID(); id != nil {
		raw := id.Bytes()
		saleRecordID = &raw
	}

	cust := o.Customer()
	return OrderDTO{
		ID:          o.ID().Bytes(),
		ShopOrderID: o.ShopOrderID(),
		Name:        o.Name(),
		Customer: CustomerDTO{
			ExternalID: cust.ExternalID,
			Name:       cust.Name,
			Email:      cust.Email,
			Phone:      cust.Phone,
			Line1:      cust.Address.Line1,
			Line2:      cust.Address.Line2,
			City:       cust.Address.City,
			State:      cust.Address.State,
			Zip:        cust.Address.Zip,
			Country:    cust.Address.Country,
		},
		Lines:             lines,
		Status:            int(o.Status()),
		FailureKind:       string(o.FailureKind()),
		FailureDetail:     o.FailureDetail(),
		Warnings:          o.Warnings(),
		ShipmentID:        shipmentID,
		SaleRecordID:      saleRecordID,
		InventoryDeducted: o.InventoryDeducted(),
	}
}

// toDomain converts a database DTO back to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		weight, weightErr := kernel.NewWeightGrams(l.UnitWeightGrams)
		if weightErr != nil {
			return nil, weightErr
		}

		line, lineErr := order.NewLine(l.SKU, l.Title, l.Quantity, l.UnitPrice, weight, l.RequiresShipping)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var shipmentID *kernel.UUID
	if dto.ShipmentID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.ShipmentID)[:])
		if sErr != nil {
			return nil, sErr
		}
		shipmentID = &sID
	}

	var saleRecordID *kernel.UUID
	if dto.SaleRecordID != nil {
		srID, srErr := kernel.UUIDFromBytes((*dto.SaleRecordID)[:])
		if srErr != nil {
			return nil, srErr
		}
		saleRecordID = &srID
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:          id,
		ShopOrderID: dto.ShopOrderID,
		Name:        dto.Name,
		Customer: order.CustomerInfo{
			ExternalID: dto.Customer.ExternalID,
			Name:       dto.Customer.Name,
			Email:      dto.Customer.Email,
			Phone:      dto.Customer.Phone,
			Address: kernel.Address{
				Line1:   dto.Customer.Line1,
				Line2:   dto.Customer.Line2,
				City:    dto.Customer.City,
				State:   dto.Customer.State,
				Zip:     dto.Customer.Zip,
				Country: dto.Customer.Country,
			},
		},
		Lines:             lines,
		Status:            order.Status(dto.Status),
		FailureKind:       order.FailureKind(dto.FailureKind),
		FailureDetail:     dto.FailureDetail,
		Warnings:          dto.Warnings,
		ShipmentID:        shipmentID,
		SaleRecordID:      saleRecordID,
		InventoryDeducted: dto.InventoryDeducted,
	})
}
