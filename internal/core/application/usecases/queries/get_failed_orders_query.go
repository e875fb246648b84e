package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetFailedOrdersQueryIsNotConstructed = errors.New(
		"GetFailedOrdersQuery must be created via NewGetFailedOrdersQuery constructor",
	)
)

// GetFailedOrdersQuery retrieves all orders stuck in the failed status,
// together with the recorded failure reason. Operators use this view to
// decide which orders to retry after fixing the underlying problem.
type GetFailedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFailedOrdersQuery creates a query to retrieve failed orders.
func NewGetFailedOrdersQuery() GetFailedOrdersQuery {
	return GetFailedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFailedOrdersQueryIsNotConstructed if validation fails.
func (q GetFailedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetFailedOrdersQueryIsNotConstructed)
}

// GetFailedOrdersQueryResponse represents one failed order.
type GetFailedOrdersQueryResponse struct {
	ID            kernel.UUID
	ShopOrderID   string
	Name          string
	FailureKind   string
	FailureDetail string
}
