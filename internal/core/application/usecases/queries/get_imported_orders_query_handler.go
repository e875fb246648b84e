package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetImportedOrdersQueryHandler reads the import backlog from the database.
type GetImportedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetImportedOrdersQueryHandler creates a handler for import backlog queries.
func NewGetImportedOrdersQueryHandler(db *gorm.DB) GetImportedOrdersQueryHandler {
	return GetImportedOrdersQueryHandler{db: db}
}

// Handle executes the query. The line count comes from the serialized lines
// column, so no second table is involved.
func (h GetImportedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetImportedOrdersQuery,
) ([]GetImportedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetImportedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shop_order_id,
			name,
			jsonb_array_length(lines) AS line_count
		FROM orders
		WHERE status = ?
		ORDER BY shop_order_id
	`, order.Imported).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetImportedOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.ShopOrderID,
			&resp.Name,
			&resp.LineCount,
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
