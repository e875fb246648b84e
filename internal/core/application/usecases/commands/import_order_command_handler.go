package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ImportOrderCommandHandler handles the business logic for order ingestion.
// New shop order IDs create orders in Imported status; known IDs refresh
// the stored order without duplicating it.
type ImportOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewImportOrderCommandHandler creates a handler for order ingestion.
// Requires an OrderUoWFactory for transactional persistence.
func NewImportOrderCommandHandler(uowFactory OrderUoWFactory) ImportOrderCommandHandler {
	return ImportOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the import command and returns the internal order ID.
// The upsert runs in one transaction so a concurrent duplicate delivery
// of the same payload cannot create two orders.
func (h *ImportOrderCommandHandler) Handle(ctx context.Context, cmd ImportOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.GetByShopOrderID(ctx, cmd.ShopOrderID())
	switch {
	case err == nil:
		if err = existing.ApplyImport(cmd.Name(), cmd.Customer(), cmd.Lines()); err != nil {
			return kernel.UUID{}, err
		}
		if err = orderRepo.Update(ctx, existing); err != nil {
			return kernel.UUID{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return kernel.UUID{}, err
		}
		return existing.ID(), nil

	case isNotFound(err):
		newOrder, orderErr := order.NewOrder(kernel.NewUUID(), cmd.ShopOrderID(), cmd.Name(), cmd.Customer(), cmd.Lines())
		if orderErr != nil {
			return kernel.UUID{}, orderErr
		}
		if err = orderRepo.Add(ctx, newOrder); err != nil {
			return kernel.UUID{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return kernel.UUID{}, err
		}
		return newOrder.ID(), nil

	default:
		return kernel.UUID{}, err
	}
}

func isNotFound(err error) bool {
	var notFound *errs.ObjectNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, errs.ErrObjectNotFound)
}
