// Package shipmentrepo persists shipments, including the rate the shopper
// chose and the purchased label payload.
package shipmentrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipments.
// The label payload is kept inline; labels are small (a few hundred KB at
// most for PDF) and always read together with the shipment.
type ShipmentDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	BoxID            uuid.UUID `gorm:"type:uuid"`
	Carrier          string    ``
	Service          string    ``
	Amount           float64   ``
	Currency         string    ``
	PayloadRef       string    ``
	TotalWeightGrams float64   ``
	Status           int       ``
	LabelData        []byte    ``
	LabelFormat      string    ``
	TrackingNumber   string    ``
	TrackingURL      string    ``
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	rate := s.Rate()
	return ShipmentDTO{
		ID:               s.ID().Bytes(),
		OrderID:          s.OrderID().Bytes(),
		BoxID:            s.BoxID().Bytes(),
		Carrier:          rate.Carrier(),
		Service:          rate.Service(),
		Amount:           rate.Amount(),
		Currency:         rate.Currency(),
		PayloadRef:       rate.PayloadRef(),
		TotalWeightGrams: s.TotalWeight().Grams(),
		Status:           int(s.Status()),
		LabelData:        s.LabelData(),
		LabelFormat:      string(s.LabelFormat()),
		TrackingNumber:   s.TrackingNumber(),
		TrackingURL:      s.TrackingURL(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	boxID, err := kernel.UUIDFromBytes(dto.BoxID[:])
	if err != nil {
		return nil, err
	}

	rate, err := shipment.NewRate(dto.Carrier, dto.Service, dto.Amount, dto.Currency, dto.PayloadRef)
	if err != nil {
		return nil, err
	}

	totalWeight, err := kernel.NewWeightGrams(dto.TotalWeightGrams)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:             id,
		OrderID:        orderID,
		BoxID:          boxID,
		Rate:           rate,
		TotalWeight:    totalWeight,
		Status:         shipment.Status(dto.Status),
		LabelData:      dto.LabelData,
		LabelFormat:    shipment.LabelFormat(dto.LabelFormat),
		TrackingNumber: dto.TrackingNumber,
		TrackingURL:    dto.TrackingURL,
	})
}
