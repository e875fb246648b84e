package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidLine(t *testing.T, sku string, quantity int, grams float64) order.Line {
	t.Helper()
	w, err := kernel.NewWeightGrams(grams)
	require.NoError(t, err)
	l, err := order.NewLine(sku, sku, quantity, 10, w, true)
	require.NoError(t, err)
	return l
}

func payloadCustomer() order.CustomerInfo {
	return order.CustomerInfo{
		ExternalID: "cust-7",
		Name:       "Sam Lee",
		Email:      "sam@example.com",
		Phone:      "+1 (555) 010-0000",
		Address:    kernel.Address{Line1: "1 Pine St", City: "Denver", State: "CO", Zip: "80202", Country: "US"},
	}
}

func TestNewImportOrderCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewImportOrderCommand("4411", "#1027", payloadCustomer(),
			[]order.Line{paidLine(t, "MUG-11", 1, 250)})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "4411", cmd.ShopOrderID())
		assert.Equal(t, "#1027", cmd.Name())
		assert.Len(t, cmd.Lines(), 1)
	})

	t.Run("should reject blank shop order ID", func(t *testing.T) {
		_, err := commands.NewImportOrderCommand("  ", "#1027", payloadCustomer(),
			[]order.Line{paidLine(t, "MUG-11", 1, 250)})

		assert.ErrorIs(t, err, commands.ErrShopOrderIDIsRequired)
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		_, err := commands.NewImportOrderCommand("4411", "#1027", payloadCustomer(), nil)

		assert.ErrorIs(t, err, commands.ErrLinesAreRequired)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.ImportOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrImportOrderCommandIsNotConstructed)
	})
}
