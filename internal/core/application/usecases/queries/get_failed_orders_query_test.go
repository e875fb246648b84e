package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
)

func TestNewGetFailedOrdersQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		query := queries.NewGetFailedOrdersQuery()
		assert.NoError(t, query.Validate())
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		var query queries.GetFailedOrdersQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetFailedOrdersQueryIsNotConstructed)
	})
}
