package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Imported))
		assert.Equal(t, 2, int(order.Fulfilling))
		assert.Equal(t, 3, int(order.Printed))
		assert.Equal(t, 4, int(order.Shipped))
		assert.Equal(t, 5, int(order.Failed))
		assert.Equal(t, 6, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Imported,
			order.Fulfilling,
			order.Printed,
			order.Shipped,
			order.Failed,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out of range status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Status(-1),
			order.Status(7),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "status is invalid")
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct string representations", func(t *testing.T) {
		testCases := map[order.Status]string{
			order.Unknown:    "Unknown",
			order.Imported:   "Imported",
			order.Fulfilling: "Fulfilling",
			order.Printed:    "Printed",
			order.Shipped:    "Shipped",
			order.Failed:     "Failed",
			order.Cancelled:  "Cancelled",
		}

		for status, expected := range testCases {
			assert.Equal(t, expected, status.String())
		}
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should be terminal for Shipped and Cancelled", func(t *testing.T) {
		assert.True(t, order.Shipped.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
	})

	t.Run("should not be terminal for other statuses", func(t *testing.T) {
		assert.False(t, order.Imported.IsTerminal())
		assert.False(t, order.Fulfilling.IsTerminal())
		assert.False(t, order.Printed.IsTerminal())
		assert.False(t, order.Failed.IsTerminal())
	})
}

func TestStatus_StartFulfillment(t *testing.T) {
	t.Run("should transition from Imported, Fulfilling and Failed", func(t *testing.T) {
		for _, status := range []order.Status{order.Imported, order.Fulfilling, order.Failed} {
			newStatus, err := status.StartFulfillment()

			require.NoError(t, err)
			assert.Equal(t, order.Fulfilling, newStatus)
		}
	})

	t.Run("should reject other statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Printed, order.Shipped, order.Cancelled} {
			_, err := status.StartFulfillment()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid status to start fulfillment")
		}
	})
}

func TestStatus_MarkPrinted(t *testing.T) {
	t.Run("should transition from Fulfilling", func(t *testing.T) {
		newStatus, err := order.Fulfilling.MarkPrinted()

		require.NoError(t, err)
		assert.Equal(t, order.Printed, newStatus)
	})

	t.Run("should reject other statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Imported, order.Printed, order.Shipped, order.Failed, order.Cancelled} {
			_, err := status.MarkPrinted()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid status to mark printed")
		}
	})
}

func TestStatus_MarkShipped(t *testing.T) {
	t.Run("should transition from Printed", func(t *testing.T) {
		newStatus, err := order.Printed.MarkShipped()

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, newStatus)
	})

	t.Run("should reject other statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Imported, order.Fulfilling, order.Shipped, order.Failed, order.Cancelled} {
			_, err := status.MarkShipped()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid status to mark shipped")
		}
	})
}

func TestStatus_Fail(t *testing.T) {
	t.Run("should transition from any non-terminal status", func(t *testing.T) {
		for _, status := range []order.Status{order.Imported, order.Fulfilling, order.Printed, order.Failed} {
			newStatus, err := status.Fail()

			require.NoError(t, err)
			assert.Equal(t, order.Failed, newStatus)
		}
	})

	t.Run("should reject terminal statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Shipped, order.Cancelled} {
			_, err := status.Fail()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid status to fail")
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should transition from statuses before Shipped", func(t *testing.T) {
		for _, status := range []order.Status{order.Imported, order.Fulfilling, order.Printed, order.Failed} {
			newStatus, err := status.Cancel()

			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, newStatus)
		}
	})

	t.Run("should reject Shipped and Cancelled", func(t *testing.T) {
		for _, status := range []order.Status{order.Shipped, order.Cancelled} {
			_, err := status.Cancel()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid status to cancel")
		}
	})
}
