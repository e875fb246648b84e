package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetFailedOrdersQueryHandler reads failed orders straight from the
// database. Read-side handlers bypass the aggregates and repositories; they
// only need a few columns per row.
type GetFailedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetFailedOrdersQueryHandler creates a handler for failed order queries.
func NewGetFailedOrdersQueryHandler(db *gorm.DB) GetFailedOrdersQueryHandler {
	return GetFailedOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by shop order ID so repeated
// polls return rows in a stable order.
func (h GetFailedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetFailedOrdersQuery,
) ([]GetFailedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetFailedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shop_order_id,
			name,
			failure_kind,
			failure_detail
		FROM orders
		WHERE status = ?
		ORDER BY shop_order_id
	`, order.Failed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetFailedOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.ShopOrderID,
			&resp.Name,
			&resp.FailureKind,
			&resp.FailureDetail,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
