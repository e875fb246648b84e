package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// FulfillOrderCommandHandler drives one order through the fulfillment
// pipeline: box selection, rate shopping, label purchase, and print job
// creation.
//
// The pipeline is resume-aware. Each stage persists its result before
// the next external call, so a crash or failure leaves enough state to
// pick up where it stopped: an order with a usable labeled shipment
// skips straight to ensuring its print job exists.
//
// External carrier calls happen between transactions, never inside one.
// Every classified failure is recorded on the order before the handler
// returns the underlying error.
type FulfillOrderCommandHandler struct {
	uowFactory  FulfillmentUoWFactory
	rates       ports.RateProvider
	labels      ports.LabelRenderer
	boxSelector services.BoxSelector
	rateShopper services.RateShopper
}

// NewFulfillOrderCommandHandler creates a handler for the fulfillment pipeline.
func NewFulfillOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	rates ports.RateProvider,
	labels ports.LabelRenderer,
	boxSelector services.BoxSelector,
	rateShopper services.RateShopper,
) FulfillOrderCommandHandler {
	return FulfillOrderCommandHandler{
		uowFactory:  uowFactory,
		rates:       rates,
		labels:      labels,
		boxSelector: boxSelector,
		rateShopper: rateShopper,
	}
}

// Handle runs the pipeline for the commanded order.
func (h *FulfillOrderCommandHandler) Handle(ctx context.Context, cmd FulfillOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, boxes, existing, err := h.startFulfillment(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if existing != nil && existing.IsUsable() {
		return h.ensurePrintJob(ctx, o.ID(), existing.ID())
	}

	chosenBox, err := h.boxSelector.Select(o, boxes)
	if err != nil {
		if errors.Is(err, services.ErrNoBoxFits) {
			return h.recordFailure(ctx, o.ID(), order.FailureNoBoxFits, err.Error(), err)
		}
		return err
	}

	payload := o.TotalShippingWeight().Add(chosenBox.BoxWeight())
	quote, err := h.rates.GetRates(ctx, ports.RateRequest{
		ToName:    o.Customer().Name,
		ToPhone:   o.Customer().Phone,
		ToAddress: o.Customer().Address,
		LengthIn:  chosenBox.LengthIn(),
		WidthIn:   chosenBox.WidthIn(),
		HeightIn:  chosenBox.HeightIn(),
		Weight:    payload,
	})
	if err != nil {
		return h.recordFailure(ctx, o.ID(), order.FailureRateFetch, err.Error(), err)
	}

	chosenRate, err := h.rateShopper.Choose(quote)
	if err != nil {
		if errors.Is(err, services.ErrNoRateAvailable) {
			return h.recordFailure(ctx, o.ID(), order.FailureNoRateAvailable, err.Error(), err)
		}
		return err
	}

	pending, err := h.createShipment(ctx, o.ID(), chosenBox, chosenRate, payload)
	if err != nil {
		return err
	}

	label, err := h.labels.PurchaseLabel(ctx, chosenRate)
	if err != nil {
		if failErr := h.failShipment(ctx, pending.ID()); failErr != nil {
			return errors.Join(err, failErr)
		}
		return h.recordFailure(ctx, o.ID(), order.FailureLabelGeneration, err.Error(), err)
	}

	return h.finishLabeling(ctx, o.ID(), pending.ID(), label)
}

// startFulfillment moves the order into Fulfilling and snapshots the box
// configuration plus any shipment a previous run already attached.
func (h *FulfillOrderCommandHandler) startFulfillment(
	ctx context.Context,
	orderID kernel.UUID,
) (*order.Order, []*box.Box, *shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, nil, nil, err
	}

	if err = o.StartFulfillment(); err != nil {
		return nil, nil, nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, nil, nil, err
	}

	boxes, err := uow.BoxRepository().GetAllActive(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	var existing *shipment.Shipment
	if o.ShipmentID() != nil {
		existing, err = uow.ShipmentRepository().Get(ctx, *o.ShipmentID())
		if err != nil {
			return nil, nil, nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, nil, err
	}

	return o, boxes, existing, nil
}

// createShipment persists the pending shipment and points the order at
// it, superseding a previous failed attempt when one exists.
func (h *FulfillOrderCommandHandler) createShipment(
	ctx context.Context,
	orderID kernel.UUID,
	chosenBox *box.Box,
	chosenRate shipment.Rate,
	totalWeight kernel.Weight,
) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := shipment.NewShipment(kernel.NewUUID(), orderID, chosenBox.ID(), chosenRate, totalWeight)
	if err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Add(ctx, pending); err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.ShipmentID() == nil {
		err = o.AttachShipment(pending.ID())
	} else {
		err = o.ReplaceShipment(pending.ID())
	}
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pending, nil
}

// finishLabeling stores the purchased label and queues the print job in
// one transaction, so a labeled shipment can never exist without its job.
func (h *FulfillOrderCommandHandler) finishLabeling(
	ctx context.Context,
	orderID kernel.UUID,
	shipmentID kernel.UUID,
	label shipment.Label,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, shipmentID)
	if err != nil {
		return err
	}

	if err = s.AttachLabel(label); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return err
	}

	job, err := printjob.NewPrintJob(kernel.NewUUID(), orderID, shipmentID, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.PrintJobRepository().Add(ctx, job); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ensurePrintJob queues a print job for an already labeled shipment when
// a previous run crashed between labeling and enqueueing. A terminally
// failed job is requeued with a fresh attempt budget, so resuming a
// failed order re-drives the print instead of stranding it.
func (h *FulfillOrderCommandHandler) ensurePrintJob(ctx context.Context, orderID, shipmentID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.PrintJobRepository().GetByShipmentID(ctx, shipmentID)
	if err == nil {
		if existing.State() != printjob.StateFailed {
			return uow.Commit(ctx)
		}
		if err = existing.RetryFromFailed(); err != nil {
			return err
		}
		if err = uow.PrintJobRepository().Update(ctx, existing); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}
	if !isNotFound(err) {
		return err
	}

	job, err := printjob.NewPrintJob(kernel.NewUUID(), orderID, shipmentID, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.PrintJobRepository().Add(ctx, job); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// failShipment marks a pending shipment failed so a later retry builds a
// fresh one instead of reusing a half-purchased attempt.
func (h *FulfillOrderCommandHandler) failShipment(ctx context.Context, shipmentID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, shipmentID)
	if err != nil {
		return err
	}

	if err = s.MarkFailed(); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// recordFailure classifies the failure on the order in its own
// transaction, then returns the original pipeline error.
func (h *FulfillOrderCommandHandler) recordFailure(
	ctx context.Context,
	orderID kernel.UUID,
	kind order.FailureKind,
	detail string,
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

	if err = o.Fail(kind, detail); err != nil {
		return errors.Join(cause, err)
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return errors.Join(cause, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errors.Join(cause, err)
	}

	return fmt.Errorf("fulfillment failed (%s): %w", kind, cause)
}
