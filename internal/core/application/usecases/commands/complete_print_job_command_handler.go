package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/sale"
)

// CompletePrintJobCommandHandler processes completion reports from print
// agents and runs the post-print bookkeeping.
//
// Report handling rules:
//   - Reports from an agent that does not hold the claim are no-ops
//   - A duplicate success report is the retry vehicle for bookkeeping:
//     the job stays Done, but any step whose guard flag is still unset
//     runs again
//   - A failure report requeues the job while attempts remain, and fails
//     both the job and its order once the budget is spent
//
// Bookkeeping (inventory deduction, customer upsert, sale record) runs in
// separate sequential transactions. Each step is guarded by persisted
// state, so a crash between steps never repeats a committed one and a
// failed later step never rolls back an earlier one.
type CompletePrintJobCommandHandler struct {
	uowFactory  CompletionUoWFactory
	maxAttempts int
}

// NewCompletePrintJobCommandHandler creates a handler for completion reports.
func NewCompletePrintJobCommandHandler(uowFactory CompletionUoWFactory, maxAttempts int) CompletePrintJobCommandHandler {
	return CompletePrintJobCommandHandler{
		uowFactory:  uowFactory,
		maxAttempts: maxAttempts,
	}
}

// Handle processes one completion report.
func (h *CompletePrintJobCommandHandler) Handle(ctx context.Context, cmd CompletePrintJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Success() {
		return h.handleFailureReport(ctx, cmd)
	}

	orderID, proceed, err := h.handleSuccessReport(ctx, cmd)
	if err != nil || !proceed {
		return err
	}

	return h.finalizeOrder(ctx, orderID)
}

// handleSuccessReport records the successful print on the job and the
// order. It reports whether bookkeeping should run: true for first and
// duplicate success reports, false for no-op reports.
func (h *CompletePrintJobCommandHandler) handleSuccessReport(
	ctx context.Context,
	cmd CompletePrintJobCommand,
) (kernel.UUID, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	job, err := uow.PrintJobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return kernel.UUID{}, false, err
	}

	completeErr := job.CompleteSuccess(cmd.Agent(), time.Now().UTC())
	switch {
	case completeErr == nil:
		if err = uow.PrintJobRepository().Update(ctx, job); err != nil {
			return kernel.UUID{}, false, err
		}
	case errors.Is(completeErr, printjob.ErrAlreadyCompleted) && job.State() == printjob.StateDone:
		// Duplicate report: nothing to change on the job, but bookkeeping
		// may still be owed.
	default:
		return kernel.UUID{}, false, nil
	}

	o, err := uow.OrderRepository().Get(ctx, job.OrderID())
	if err != nil {
		return kernel.UUID{}, false, err
	}

	if o.Status() == order.Failed {
		if err = o.StartFulfillment(); err != nil {
			return kernel.UUID{}, false, err
		}
	}
	if o.Status() == order.Fulfilling {
		if err = o.MarkPrinted(); err != nil {
			return kernel.UUID{}, false, err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return kernel.UUID{}, false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, false, err
	}

	return job.OrderID(), true, nil
}

// handleFailureReport requeues or parks the job, and fails the order once
// the job's attempt budget is spent.
func (h *CompletePrintJobCommandHandler) handleFailureReport(ctx context.Context, cmd CompletePrintJobCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	job, err := uow.PrintJobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	completeErr := job.CompleteFailure(cmd.Agent(), cmd.ErrorDetail(), h.maxAttempts)
	if completeErr != nil {
		// Non-holder and late reports are silently dropped.
		return nil
	}

	if err = uow.PrintJobRepository().Update(ctx, job); err != nil {
		return err
	}

	if job.State() == printjob.StateFailed {
		o, orderErr := uow.OrderRepository().Get(ctx, job.OrderID())
		if orderErr != nil {
			return orderErr
		}
		if err = o.Fail(order.FailurePrint, cmd.ErrorDetail()); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// finalizeOrder runs the three bookkeeping steps for a printed order.
// Steps run in order and each failure stops the sequence, classifies the
// order, and leaves everything already committed in place.
func (h *CompletePrintJobCommandHandler) finalizeOrder(ctx context.Context, orderID kernel.UUID) error {
	if err := h.deductInventoryStep(ctx, orderID); err != nil {
		return h.recordBookkeepingFailure(ctx, orderID, order.FailureInventoryDeduction, err)
	}

	customerID, err := h.upsertCustomerStep(ctx, orderID)
	if err != nil {
		return h.recordBookkeepingFailure(ctx, orderID, order.FailureCustomerUpsert, err)
	}

	if err = h.createSaleRecordStep(ctx, orderID, customerID); err != nil {
		return h.recordBookkeepingFailure(ctx, orderID, order.FailureSaleRecord, err)
	}

	return nil
}

// deductInventoryStep deducts stock for each catalog-matched line, once
// per order. Lines whose SKU matches nothing become order warnings.
func (h *CompletePrintJobCommandHandler) deductInventoryStep(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if o.InventoryDeducted() {
		return uow.Rollback(ctx)
	}

	for _, line := range o.ShippableLines() {
		if line.SKU() == "" {
			o.RecordWarning(fmt.Sprintf("line %q has no sku, inventory not deducted", line.Title()))
			continue
		}

		p, lookupErr := uow.ProductRepository().GetBySKU(ctx, line.SKU())
		if lookupErr != nil {
			if isNotFound(lookupErr) {
				o.RecordWarning(fmt.Sprintf("no catalog product for sku %q, inventory not deducted", line.SKU()))
				continue
			}
			return lookupErr
		}

		if err = uow.ProductRepository().DeductStock(ctx, p.ID(), line.Quantity()); err != nil {
			return err
		}
	}

	o.MarkInventoryDeducted()
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// upsertCustomerStep creates or refreshes the customer record from the
// order's snapshot. Returns nil when the order carries no matchable
// customer data. Naturally idempotent, so it needs no guard flag.
func (h *CompletePrintJobCommandHandler) upsertCustomerStep(ctx context.Context, orderID kernel.UUID) (*kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	info := o.Customer()
	if info.ExternalID == "" && customer.NormalizeEmail(info.Email) == "" {
		return nil, uow.Rollback(ctx)
	}

	existing, err := h.findCustomer(ctx, uow, info)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Merge(info.ExternalID, info.Name, info.Email, info.Phone, info.Address)
		if err = uow.CustomerRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		id := existing.ID()
		return &id, nil
	}

	created, err := customer.NewCustomer(kernel.NewUUID(), info.ExternalID, info.Name, info.Email, info.Phone, info.Address)
	if err != nil {
		return nil, err
	}

	if err = uow.CustomerRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	id := created.ID()
	return &id, nil
}

func (h *CompletePrintJobCommandHandler) findCustomer(
	ctx context.Context,
	uow CompletionUoW,
	info order.CustomerInfo,
) (*customer.Customer, error) {
	if info.ExternalID != "" {
		found, err := uow.CustomerRepository().GetByExternalID(ctx, info.ExternalID)
		if err == nil {
			return found, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	if customer.NormalizeEmail(info.Email) != "" {
		found, err := uow.CustomerRepository().GetByEmail(ctx, info.Email)
		if err == nil {
			return found, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	return nil, nil
}

// createSaleRecordStep writes the sale record for the order, once. The
// record carries the catalog-matched lines plus the shipping cost when
// the chosen rate was not free. When no line matches any catalog
// product, no record is written and the order gets a warning instead.
func (h *CompletePrintJobCommandHandler) createSaleRecordStep(
	ctx context.Context,
	orderID kernel.UUID,
	customerID *kernel.UUID,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if o.SaleRecorded() {
		return uow.Rollback(ctx)
	}

	var saleLines []sale.Line
	for _, line := range o.Lines() {
		if line.SKU() == "" {
			continue
		}

		p, lookupErr := uow.ProductRepository().GetBySKU(ctx, line.SKU())
		if lookupErr != nil {
			if isNotFound(lookupErr) {
				continue
			}
			return lookupErr
		}

		saleLine, lineErr := sale.NewLine(p.ID(), line.SKU(), line.Quantity(), line.UnitPrice())
		if lineErr != nil {
			return lineErr
		}
		saleLines = append(saleLines, saleLine)
	}

	if len(saleLines) == 0 {
		const msg = "no catalog product matched any line, sale record skipped"
		if slices.Contains(o.Warnings(), msg) {
			return uow.Rollback(ctx)
		}
		o.RecordWarning(msg)
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	var shippingCost float64
	if o.ShipmentID() != nil {
		s, shipErr := uow.ShipmentRepository().Get(ctx, *o.ShipmentID())
		if shipErr != nil {
			return shipErr
		}
		shippingCost = s.Rate().Amount()
	}

	record, err := sale.NewSaleRecord(kernel.NewUUID(), o.ID(), customerID, saleLines, shippingCost, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.SaleRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = o.AttachSaleRecord(record.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// recordBookkeepingFailure classifies a bookkeeping failure on the order
// and returns the original error.
func (h *CompletePrintJobCommandHandler) recordBookkeepingFailure(
	ctx context.Context,
	orderID kernel.UUID,
	kind order.FailureKind,
	cause error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errors.Join(cause, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return errors.Join(cause, err)
	}

	if err = o.Fail(kind, cause.Error()); err != nil {
		return errors.Join(cause, err)
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return errors.Join(cause, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errors.Join(cause, err)
	}

	return fmt.Errorf("bookkeeping failed (%s): %w", kind, cause)
}
