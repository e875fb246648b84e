package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkOrderShippedCommandHandler_Handle(t *testing.T) {
	t.Run("should ship a printed order", func(t *testing.T) {
		ctx := t.Context()
		s := newStore()
		o := seedImportedOrder(t, s)
		require.NoError(t, o.StartFulfillment())
		require.NoError(t, o.MarkPrinted())
		h := commands.NewMarkOrderShippedCommandHandler(orderUoWFactory{s})
		cmd, err := commands.NewMarkOrderShippedCommand(o.ID())
		require.NoError(t, err)

		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, order.Shipped, s.orders[o.ID().String()].Status())
	})

	t.Run("should reject shipping before printing", func(t *testing.T) {
		ctx := t.Context()
		s := newStore()
		o := seedImportedOrder(t, s)
		h := commands.NewMarkOrderShippedCommandHandler(orderUoWFactory{s})
		cmd, err := commands.NewMarkOrderShippedCommand(o.ID())
		require.NoError(t, err)

		require.Error(t, h.Handle(ctx, cmd))
		assert.Equal(t, order.Imported, s.orders[o.ID().String()].Status())
	})
}
