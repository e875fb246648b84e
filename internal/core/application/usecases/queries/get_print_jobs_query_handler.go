package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/printjob"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPrintJobsQueryHandler reads the print queue from the database for
// monitoring. It reports the queue position, current holder, and attempt
// count without touching the aggregates.
type GetPrintJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetPrintJobsQueryHandler creates a handler for print queue queries.
func NewGetPrintJobsQueryHandler(db *gorm.DB) GetPrintJobsQueryHandler {
	return GetPrintJobsQueryHandler{db: db}
}

// Handle executes the query, newest jobs first.
func (h GetPrintJobsQueryHandler) Handle(
	ctx context.Context,
	query GetPrintJobsQuery,
) ([]GetPrintJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_id,
			state,
			claimed_by,
			attempts,
			error_detail,
			created_at
		FROM print_jobs
	`
	args := make([]any, 0, 1)
	if query.State() != printjob.StateUnknown {
		sql += ` WHERE state = ?`
		args = append(args, query.State())
	}
	sql += ` ORDER BY created_at DESC`

	jobs := make([]GetPrintJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPrintJobsQueryResponse
		var id, orderID uuid.UUID
		var state int

		err = rows.Scan(
			&id,
			&orderID,
			&state,
			&resp.ClaimedBy,
			&resp.Attempts,
			&resp.ErrorDetail,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = jobID

		jobOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = jobOrderID

		resp.State = printjob.State(state).String()
		jobs = append(jobs, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
