package boxrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBoxRepository implements BoxRepository using GORM.
type GormBoxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBoxRepository creates a new GORM box repository.
func NewGormBoxRepository(db *gorm.DB, tracker aggregateTracker) *GormBoxRepository {
	return &GormBoxRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new box to the database.
func (r *GormBoxRepository) Add(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing box to the database.
func (r *GormBoxRepository) Update(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BoxDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a box by ID.
func (r *GormBoxRepository) Get(ctx context.Context, id kernel.UUID) (*box.Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BoxDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("box", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves the active box catalog ordered by priority.
// The selector relies on this ordering as its final tie-breaker.
func (r *GormBoxRepository) GetAllActive(ctx context.Context) ([]*box.Box, error) {
	var dtos []BoxDTO
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority, name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	boxes := make([]*box.Box, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}

	return boxes, nil
}
