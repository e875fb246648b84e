package printjobrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPrintJobRepository implements PrintJobRepository using GORM.
type GormPrintJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPrintJobRepository creates a new GORM print job repository.
func NewGormPrintJobRepository(db *gorm.DB, tracker aggregateTracker) *GormPrintJobRepository {
	return &GormPrintJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new print job to the database.
func (r *GormPrintJobRepository) Add(ctx context.Context, aggregate *printjob.PrintJob) error {
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

// Update saves an existing print job to the database.
func (r *GormPrintJobRepository) Update(ctx context.Context, aggregate *printjob.PrintJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PrintJobDTO{}).
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

// Get retrieves a print job by ID.
func (r *GormPrintJobRepository) Get(ctx context.Context, id kernel.UUID) (*printjob.PrintJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PrintJobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("print job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByShipmentID retrieves the print job created for a shipment.
func (r *GormPrintJobRepository) GetByShipmentID(ctx context.Context, shipmentID kernel.UUID) (*printjob.PrintJob, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto PrintJobDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("print job", shipmentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClaimQueued atomically claims up to limit jobs for an agent. Eligible jobs
// are queued jobs and claimed jobs whose lease expired. SKIP LOCKED keeps
// concurrent pollers from receiving the same rows; the claim itself (state,
// holder, lease start, attempt consumption) happens inside the UPDATE so a
// job can never be handed out twice.
func (r *GormPrintJobRepository) ClaimQueued(
	ctx context.Context,
	agent string,
	limit int,
	lease time.Duration,
	now time.Time,
) ([]*printjob.PrintJob, error) {
	if agent == "" {
		return nil, errs.NewValueIsRequiredError("agent")
	}
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	cutoff := now.Add(-lease)

	var dtos []PrintJobDTO
	err := r.db.WithContext(ctx).Raw(`
		UPDATE print_jobs
		SET state = ?,
			claimed_by = ?,
			claimed_at = ?,
			attempts = attempts + 1
		WHERE id IN (
			SELECT id
			FROM print_jobs
			WHERE state = ?
			   OR (state = ? AND claimed_at < ?)
			ORDER BY created_at
			LIMIT ?
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *
	`, printjob.StateClaimed, agent, now,
		printjob.StateQueued,
		printjob.StateClaimed, cutoff,
		limit,
	).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*printjob.PrintJob, 0, len(dtos))
	for _, dto := range dtos {
		j, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

// GetExpiredClaims retrieves claimed jobs whose lease ran out. Used by the
// sweeper that requeues or fails abandoned claims.
func (r *GormPrintJobRepository) GetExpiredClaims(
	ctx context.Context,
	lease time.Duration,
	now time.Time,
) ([]*printjob.PrintJob, error) {
	cutoff := now.Add(-lease)

	var dtos []PrintJobDTO
	err := r.db.WithContext(ctx).
		Where("state = ? AND claimed_at < ?", printjob.StateClaimed, cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*printjob.PrintJob, 0, len(dtos))
	for _, dto := range dtos {
		j, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}
