package sale_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestNewLine(t *testing.T) {
	t.Run("should create valid line with subtotal", func(t *testing.T) {
		l, err := sale.NewLine(kernel.NewUUID(), "MUG-11", 3, 12.50)

		require.NoError(t, err)
		assert.InDelta(t, 37.50, l.Subtotal(), 0.0001)
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := sale.NewLine(kernel.NewUUID(), "MUG-11", 0, 12.50)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should reject invalid product ID", func(t *testing.T) {
		var badID kernel.UUID

		_, err := sale.NewLine(badID, "MUG-11", 1, 12.50)

		require.Error(t, err)
	})
}

func TestNewSaleRecord(t *testing.T) {
	makeLines := func(t *testing.T) []sale.Line {
		t.Helper()
		l1, err := sale.NewLine(kernel.NewUUID(), "MUG-11", 2, 12.50)
		require.NoError(t, err)
		l2, err := sale.NewLine(kernel.NewUUID(), "TEE-03", 1, 20)
		require.NoError(t, err)
		return []sale.Line{l1, l2}
	}

	t.Run("should create record and compute total", func(t *testing.T) {
		customerID := kernel.NewUUID()
		s, err := sale.NewSaleRecord(kernel.NewUUID(), kernel.NewUUID(), &customerID,
			makeLines(t), 7.50, testNow)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.InDelta(t, 52.50, s.Total(), 0.0001)
		assert.Equal(t, testNow, s.CreatedAt())
	})

	t.Run("should allow missing customer and empty lines", func(t *testing.T) {
		s, err := sale.NewSaleRecord(kernel.NewUUID(), kernel.NewUUID(), nil, nil, 5, testNow)

		require.NoError(t, err)
		assert.Nil(t, s.CustomerID())
		assert.InDelta(t, 5, s.Total(), 0.0001)
	})

	t.Run("should reject negative shipping cost", func(t *testing.T) {
		_, err := sale.NewSaleRecord(kernel.NewUUID(), kernel.NewUUID(), nil, nil, -0.01, testNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shipping cost is invalid")
	})

	t.Run("should reject zero value record", func(t *testing.T) {
		var s sale.SaleRecord

		assert.ErrorIs(t, s.Validate(), sale.ErrSaleRecordIsNotConstructed)
	})
}
