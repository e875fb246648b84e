package salerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM.
type GormSaleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSaleRepository creates a new GORM sale record repository.
func NewGormSaleRepository(db *gorm.DB, tracker aggregateTracker) *GormSaleRepository {
	return &GormSaleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new sale record to the database. Sale records are immutable
// once written.
func (r *GormSaleRepository) Add(ctx context.Context, aggregate *sale.SaleRecord) error {
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

// Get retrieves a sale record by ID.
func (r *GormSaleRepository) Get(ctx context.Context, id kernel.UUID) (*sale.SaleRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SaleRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sale record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
