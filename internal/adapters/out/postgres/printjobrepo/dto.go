// Package printjobrepo persists the print queue. Claiming is done with a
// single UPDATE using SKIP LOCKED so concurrent agents never receive the
// same job.
package printjobrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/printjob"

	"github.com/google/uuid"
)

// PrintJobDTO represents the database structure for persisting print jobs.
type PrintJobDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	ShipmentID  uuid.UUID  `gorm:"type:uuid;index"`
	State       int        `gorm:"index"`
	ClaimedBy   string     ``
	ClaimedAt   *time.Time ``
	Attempts    int        ``
	ErrorDetail string     ``
	CreatedAt   time.Time  ``
	CompletedAt *time.Time ``
}

// TableName specifies the database table name for print job entities.
func (PrintJobDTO) TableName() string {
	return "print_jobs"
}

func fromDomain(j *printjob.PrintJob) PrintJobDTO {
	return PrintJobDTO{
		ID:          j.ID().Bytes(),
		OrderID:     j.OrderID().Bytes(),
		ShipmentID:  j.ShipmentID().Bytes(),
		State:       int(j.State()),
		ClaimedBy:   j.ClaimedBy(),
		ClaimedAt:   j.ClaimedAt(),
		Attempts:    j.Attempts(),
		ErrorDetail: j.ErrorDetail(),
		CreatedAt:   j.CreatedAt(),
		CompletedAt: j.CompletedAt(),
	}
}

func toDomain(dto PrintJobDTO) (*printjob.PrintJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	return printjob.RestorePrintJob(printjob.RestorePrintJobParams{
		ID:          id,
		OrderID:     orderID,
		ShipmentID:  shipmentID,
		State:       printjob.State(dto.State),
		ClaimedBy:   dto.ClaimedBy,
		ClaimedAt:   dto.ClaimedAt,
		Attempts:    dto.Attempts,
		ErrorDetail: dto.ErrorDetail,
		CreatedAt:   dto.CreatedAt,
		CompletedAt: dto.CompletedAt,
	})
}
