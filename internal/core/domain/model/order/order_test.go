package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() order.CustomerInfo {
	return order.CustomerInfo{
		ExternalID: "cust-42",
		Name:       "Jordan Diaz",
		Email:      "jordan@example.com",
		Phone:      "+1 555 0100",
		Address: kernel.Address{
			Line1:   "100 Main St",
			City:    "Portland",
			State:   "OR",
			Zip:     "97201",
			Country: "US",
		},
	}
}

func testLines(t *testing.T) []order.Line {
	t.Helper()
	mug, err := order.NewLine("MUG-11", "Mug", 2, 12.50, mustWeightGrams(t, 340), true)
	require.NoError(t, err)
	card, err := order.NewLine("GC-05", "Gift card", 1, 25, kernel.Weight{}, false)
	require.NoError(t, err)
	return []order.Line{mug, card}
}

func newImportedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "shop-1027", "#1027", testCustomer(), testLines(t))
	require.NoError(t, err)
	return o
}

func newFulfillingOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newImportedOrder(t)
	require.NoError(t, o.StartFulfillment())
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.NewOrder(id, "shop-1027", "#1027", testCustomer(), testLines(t))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "shop-1027", o.ShopOrderID())
		assert.Equal(t, "#1027", o.Name())
		assert.Equal(t, order.Imported, o.Status())
		assert.Equal(t, order.FailureNone, o.FailureKind())
		assert.Nil(t, o.ShipmentID())
		assert.Nil(t, o.SaleRecordID())
		assert.False(t, o.InventoryDeducted())
		assert.False(t, o.SaleRecorded())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, "shop-1027", "#1027", testCustomer(), testLines(t))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with blank shop order ID", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "  ", "#1027", testCustomer(), testLines(t))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "shopOrderID")
	})

	t.Run("should fail without lines", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "shop-1027", "#1027", testCustomer(), nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "lines")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject zero value order", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		shipmentID := kernel.NewUUID()

		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:                id,
			ShopOrderID:       "shop-1027",
			Name:              "#1027",
			Customer:          testCustomer(),
			Lines:             testLines(t),
			Status:            order.Failed,
			FailureKind:       order.FailureRateFetch,
			FailureDetail:     "connection refused",
			Warnings:          []string{"no product for sku CUSTOM-1"},
			ShipmentID:        &shipmentID,
			InventoryDeducted: true,
		})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Failed, o.Status())
		assert.Equal(t, order.FailureRateFetch, o.FailureKind())
		assert.Equal(t, "connection refused", o.FailureDetail())
		assert.Equal(t, []string{"no product for sku CUSTOM-1"}, o.Warnings())
		require.NotNil(t, o.ShipmentID())
		assert.True(t, o.ShipmentID().IsEqual(shipmentID))
		assert.True(t, o.InventoryDeducted())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          kernel.NewUUID(),
			ShopOrderID: "shop-1027",
			Status:      order.Unknown,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject invalid failure kind", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          kernel.NewUUID(),
			ShopOrderID: "shop-1027",
			Status:      order.Imported,
			FailureKind: order.FailureKind("nope"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failure kind is invalid")
	})
}

func TestOrder_ApplyImport(t *testing.T) {
	t.Run("should replace lines while still imported", func(t *testing.T) {
		o := newImportedOrder(t)
		newLine, err := order.NewLine("MUG-11", "Mug", 5, 12.50, mustWeightGrams(t, 340), true)
		require.NoError(t, err)

		require.NoError(t, o.ApplyImport("#1027-b", testCustomer(), []order.Line{newLine}))

		assert.Equal(t, "#1027-b", o.Name())
		require.Len(t, o.Lines(), 1)
		assert.Equal(t, 5, o.Lines()[0].Quantity())
	})

	t.Run("should freeze lines once fulfillment started", func(t *testing.T) {
		o := newFulfillingOrder(t)
		newLine, err := order.NewLine("MUG-11", "Mug", 99, 12.50, mustWeightGrams(t, 340), true)
		require.NoError(t, err)

		require.NoError(t, o.ApplyImport("", testCustomer(), []order.Line{newLine}))

		require.Len(t, o.Lines(), 2)
		assert.Equal(t, 2, o.Lines()[0].Quantity())
	})

	t.Run("should always refresh customer snapshot", func(t *testing.T) {
		o := newFulfillingOrder(t)
		updated := testCustomer()
		updated.Email = "new@example.com"

		require.NoError(t, o.ApplyImport("", updated, nil))

		assert.Equal(t, "new@example.com", o.Customer().Email)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o := newImportedOrder(t)

		require.NoError(t, o.StartFulfillment())
		assert.Equal(t, order.Fulfilling, o.Status())

		require.NoError(t, o.MarkPrinted())
		assert.Equal(t, order.Printed, o.Status())

		require.NoError(t, o.MarkShipped())
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("should record and clear failures on retry", func(t *testing.T) {
		o := newFulfillingOrder(t)

		require.NoError(t, o.Fail(order.FailureRateFetch, "timeout talking to carrier"))
		assert.Equal(t, order.Failed, o.Status())
		assert.Equal(t, order.FailureRateFetch, o.FailureKind())
		assert.Equal(t, "timeout talking to carrier", o.FailureDetail())

		require.NoError(t, o.StartFulfillment())
		assert.Equal(t, order.Fulfilling, o.Status())
		assert.Equal(t, order.FailureNone, o.FailureKind())
		assert.Empty(t, o.FailureDetail())
	})

	t.Run("should require a failure kind", func(t *testing.T) {
		o := newFulfillingOrder(t)

		err := o.Fail(order.FailureNone, "something")

		require.Error(t, err)
		assert.Equal(t, order.Fulfilling, o.Status())
	})

	t.Run("should cancel before shipping", func(t *testing.T) {
		o := newFulfillingOrder(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should not cancel shipped orders", func(t *testing.T) {
		o := newFulfillingOrder(t)
		require.NoError(t, o.MarkPrinted())
		require.NoError(t, o.MarkShipped())

		require.Error(t, o.Cancel())
		assert.Equal(t, order.Shipped, o.Status())
	})
}

func TestOrder_AttachShipment(t *testing.T) {
	t.Run("should attach once", func(t *testing.T) {
		o := newFulfillingOrder(t)
		shipmentID := kernel.NewUUID()

		require.NoError(t, o.AttachShipment(shipmentID))

		require.NotNil(t, o.ShipmentID())
		assert.True(t, o.ShipmentID().IsEqual(shipmentID))
	})

	t.Run("should ignore re-attaching the same shipment", func(t *testing.T) {
		o := newFulfillingOrder(t)
		shipmentID := kernel.NewUUID()
		require.NoError(t, o.AttachShipment(shipmentID))

		require.NoError(t, o.AttachShipment(shipmentID))
	})

	t.Run("should reject a second different shipment", func(t *testing.T) {
		o := newFulfillingOrder(t)
		require.NoError(t, o.AttachShipment(kernel.NewUUID()))

		err := o.AttachShipment(kernel.NewUUID())

		assert.ErrorIs(t, err, order.ErrShipmentAlreadyAttached)
	})

	t.Run("should replace shipment after failure", func(t *testing.T) {
		o := newFulfillingOrder(t)
		require.NoError(t, o.AttachShipment(kernel.NewUUID()))
		replacement := kernel.NewUUID()

		require.NoError(t, o.ReplaceShipment(replacement))

		assert.True(t, o.ShipmentID().IsEqual(replacement))
	})
}

func TestOrder_AttachSaleRecord(t *testing.T) {
	t.Run("should attach once and report SaleRecorded", func(t *testing.T) {
		o := newFulfillingOrder(t)
		saleID := kernel.NewUUID()

		require.NoError(t, o.AttachSaleRecord(saleID))

		assert.True(t, o.SaleRecorded())
		assert.True(t, o.SaleRecordID().IsEqual(saleID))
	})

	t.Run("should reject a second different sale record", func(t *testing.T) {
		o := newFulfillingOrder(t)
		require.NoError(t, o.AttachSaleRecord(kernel.NewUUID()))

		err := o.AttachSaleRecord(kernel.NewUUID())

		assert.ErrorIs(t, err, order.ErrSaleRecordAlreadyAttached)
	})
}

func TestOrder_Weights(t *testing.T) {
	t.Run("should only count shippable lines", func(t *testing.T) {
		o := newImportedOrder(t)

		shippable := o.ShippableLines()

		require.Len(t, shippable, 1)
		assert.Equal(t, "MUG-11", shippable[0].SKU())
		assert.InDelta(t, 680, o.TotalShippingWeight().Grams(), 0.0001)
	})
}

func TestOrder_Warnings(t *testing.T) {
	t.Run("should collect warnings and drop blanks", func(t *testing.T) {
		o := newImportedOrder(t)

		o.RecordWarning("no product for sku CUSTOM-1")
		o.RecordWarning("   ")
		o.RecordWarning("no product for sku CUSTOM-2")

		assert.Equal(t, []string{
			"no product for sku CUSTOM-1",
			"no product for sku CUSTOM-2",
		}, o.Warnings())
	})
}

func TestOrder_MarkInventoryDeducted(t *testing.T) {
	t.Run("should set the guard flag idempotently", func(t *testing.T) {
		o := newFulfillingOrder(t)

		o.MarkInventoryDeducted()
		o.MarkInventoryDeducted()

		assert.True(t, o.InventoryDeducted())
	})
}
