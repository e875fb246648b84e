package commands

import (
	"context"
)

// MarkOrderShippedCommandHandler records the carrier pickup on an order.
type MarkOrderShippedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkOrderShippedCommandHandler creates a handler for shipped signals.
func NewMarkOrderShippedCommandHandler(uowFactory OrderUoWFactory) MarkOrderShippedCommandHandler {
	return MarkOrderShippedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the order shipped. Only printed orders accept the signal.
func (h *MarkOrderShippedCommandHandler) Handle(ctx context.Context, cmd MarkOrderShippedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.MarkShipped(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
