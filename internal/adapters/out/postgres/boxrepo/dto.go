// Package boxrepo persists the box catalog used by the packaging selector.
package boxrepo

import (
	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BoxDTO represents the database structure for persisting box definitions.
// Weights are stored in grams to match the domain's canonical unit.
type BoxDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    ``
	LengthIn       float64   ``
	WidthIn        float64   ``
	HeightIn       float64   ``
	MaxWeightGrams float64   ``
	BoxWeightGrams float64   ``
	Priority       int       `gorm:"index"`
	Active         bool      `gorm:"index"`
}

// TableName specifies the database table name for box entities.
func (BoxDTO) TableName() string {
	return "boxes"
}

func fromDomain(b *box.Box) BoxDTO {
	return BoxDTO{
		ID:             b.ID().Bytes(),
		Name:           b.Name(),
		LengthIn:       b.LengthIn(),
		WidthIn:        b.WidthIn(),
		HeightIn:       b.HeightIn(),
		MaxWeightGrams: b.MaxWeight().Grams(),
		BoxWeightGrams: b.BoxWeight().Grams(),
		Priority:       b.Priority(),
		Active:         b.Active(),
	}
}

func toDomain(dto BoxDTO) (*box.Box, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	maxWeight, err := kernel.NewWeightGrams(dto.MaxWeightGrams)
	if err != nil {
		return nil, err
	}

	boxWeight, err := kernel.NewWeightGrams(dto.BoxWeightGrams)
	if err != nil {
		return nil, err
	}

	return box.RestoreBox(
		id,
		dto.Name,
		dto.LengthIn, dto.WidthIn, dto.HeightIn,
		maxWeight,
		boxWeight,
		dto.Priority,
		dto.Active,
	)
}
