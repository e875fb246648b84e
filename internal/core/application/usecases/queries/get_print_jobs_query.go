package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPrintJobsQueryIsNotConstructed = errors.New(
		"GetPrintJobsQuery must be created via NewGetPrintJobsQuery constructor",
	)
)

// GetPrintJobsQuery retrieves print jobs for the monitoring view, newest
// first. A state of printjob.StateUnknown returns jobs in every state;
// any other state narrows the result to that state only.
type GetPrintJobsQuery struct {
	state printjob.State

	guard guard.ConstructorGuard
}

// NewGetPrintJobsQuery creates a query to retrieve print jobs, optionally
// filtered by state.
func NewGetPrintJobsQuery(state printjob.State) (GetPrintJobsQuery, error) {
	if state != printjob.StateUnknown {
		if err := state.Validate(); err != nil {
			return GetPrintJobsQuery{}, err
		}
	}

	return GetPrintJobsQuery{
		state: state,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// State returns the state filter, printjob.StateUnknown meaning no filter.
func (q GetPrintJobsQuery) State() printjob.State {
	return q.state
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPrintJobsQueryIsNotConstructed if validation fails.
func (q GetPrintJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetPrintJobsQueryIsNotConstructed)
}

// GetPrintJobsQueryResponse represents one print job row.
type GetPrintJobsQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	State       string
	ClaimedBy   string
	Attempts    int
	ErrorDetail string
	CreatedAt   time.Time
}
