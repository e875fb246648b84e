package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetImportedOrdersQueryIsNotConstructed = errors.New(
		"GetImportedOrdersQuery must be created via NewGetImportedOrdersQuery constructor",
	)
)

// GetImportedOrdersQuery retrieves orders waiting for the fulfillment
// pipeline. It backs the dashboard view of the import backlog.
type GetImportedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetImportedOrdersQuery creates a query to retrieve imported orders.
func NewGetImportedOrdersQuery() GetImportedOrdersQuery {
	return GetImportedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetImportedOrdersQueryIsNotConstructed if validation fails.
func (q GetImportedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetImportedOrdersQueryIsNotConstructed)
}

// GetImportedOrdersQueryResponse represents one order in the import backlog.
type GetImportedOrdersQueryResponse struct {
	ID          kernel.UUID
	ShopOrderID string
	Name        string
	LineCount   int
}
