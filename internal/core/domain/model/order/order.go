package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrShipmentAlreadyAttached is returned when attaching a shipment to an
	// order that already references one.
	ErrShipmentAlreadyAttached = errors.New("order already has a shipment attached")

	// ErrSaleRecordAlreadyAttached is returned when attaching a sale record to
	// an order that already references one. Order -> Sale Record is 0-or-1.
	ErrSaleRecordAlreadyAttached = errors.New("order already has a sale record attached")
)

// CustomerInfo is the customer snapshot captured from the shop payload at
// import time. It feeds both the shipping label (name, phone, address) and
// the post-fulfillment customer record upsert (external ID, email).
type CustomerInfo struct {
	ExternalID string
	Name       string
	Email      string
	Phone      string
	Address    kernel.Address
}

// Order is the aggregate root tying the fulfillment pipeline, the print
// queue, and the downstream bookkeeping into one consistent lifecycle.
//
// Order follows these invariants:
//   - Identified by an internal UUID and a shop-assigned order ID;
//     the shop ID is the idempotency key for imports
//   - References at most one Shipment and at most one Sale Record
//   - Status transitions follow the rules encoded in Status
//   - A recorded FailureKind always accompanies the Failed status
//   - Inventory deduction and sale record creation each happen at most
//     once, guarded by persisted flags that survive retries
//   - Line items are frozen once fulfillment starts
//   - Orders are never deleted; cancellation is a status
//
// Mutation happens only through the command handlers driving this
// aggregate; all setters validate the transition they perform.
type Order struct {
	id          kernel.UUID
	shopOrderID string
	name        string

	customer CustomerInfo
	lines    []Line

	status        Status
	failureKind   FailureKind
	failureDetail string
	warnings      []string

	shipmentID   *kernel.UUID
	saleRecordID *kernel.UUID

	inventoryDeducted bool

	isConstructed bool
}

// NewOrder creates an imported Order from a shop payload.
//
// Parameters:
//   - id: internal identifier (must be a valid UUID)
//   - shopOrderID: shop-assigned identifier, the import idempotency key
//   - name: display name from the shop (e.g. "#1027"), may be empty
//   - customer: customer snapshot from the payload
//   - lines: ordered line items (at least one required)
//
// The new order starts in Imported status with no shipment, no sale
// record, and no side-effect flags set.
func NewOrder(
	id kernel.UUID,
	shopOrderID string,
	name string,
	customer CustomerInfo,
	lines []Line,
) (*Order, error) {
	o := &Order{
		status:        Imported,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setShopOrderID(shopOrderID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.name = name
	o.customer = customer
	return o, nil
}

// RestoreOrderParams carries the persisted state needed to reconstruct an
// Order aggregate from storage.
type RestoreOrderParams struct {
	ID                kernel.UUID
	ShopOrderID       string
	Name              string
	Customer          CustomerInfo
	Lines             []Line
	Status            Status
	FailureKind       FailureKind
	FailureDetail     string
	Warnings          []string
	ShipmentID        *kernel.UUID
	SaleRecordID      *kernel.UUID
	InventoryDeducted bool
}

// RestoreOrder reconstructs an Order from persistence, validating the
// stored status and failure kind. Used only by repository implementations.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.Status.Validate(),
		p.FailureKind.Validate(),
	); err != nil {
		return nil, err
	}

	if strings.TrimSpace(p.ShopOrderID) == "" {
		return nil, errs.NewValueIsRequiredError("shopOrderID")
	}

	return &Order{
		id:                p.ID,
		shopOrderID:       p.ShopOrderID,
		name:              p.Name,
		customer:          p.Customer,
		lines:             p.Lines,
		status:            p.Status,
		failureKind:       p.FailureKind,
		failureDetail:     p.FailureDetail,
		warnings:          p.Warnings,
		shipmentID:        p.ShipmentID,
		saleRecordID:      p.SaleRecordID,
		inventoryDeducted: p.InventoryDeducted,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order was constructed through a factory function.
// Called when reconstructing orders from persistence to ensure integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their internal identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the internal identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ShopOrderID returns the shop-assigned identifier.
func (o *Order) ShopOrderID() string {
	return o.shopOrderID
}

// Name returns the shop display name, possibly empty.
func (o *Order) Name() string {
	return o.name
}

// Customer returns the customer snapshot.
func (o *Order) Customer() CustomerInfo {
	return o.customer
}

// Lines returns the ordered line items.
func (o *Order) Lines() []Line {
	return o.lines
}

// ShippableLines returns only the lines that require physical shipping.
func (o *Order) ShippableLines() []Line {
	shippable := make([]Line, 0, len(o.lines))
	for _, l := range o.lines {
		if l.RequiresShipping() {
			shippable = append(shippable, l)
		}
	}
	return shippable
}

// TotalShippingWeight sums the weight of all shippable lines.
// Box weight is not included here; the rate shopper adds it per box.
func (o *Order) TotalShippingWeight() kernel.Weight {
	var total kernel.Weight
	for _, l := range o.ShippableLines() {
		total = total.Add(l.TotalWeight())
	}
	return total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// FailureKind returns the recorded failure classification, FailureNone
// when the order carries no failure.
func (o *Order) FailureKind() FailureKind {
	return o.failureKind
}

// FailureDetail returns the human-readable failure detail.
func (o *Order) FailureDetail() string {
	return o.failureDetail
}

// Warnings returns non-fatal problems recorded during processing, such as
// line items whose SKU matched no catalog product.
func (o *Order) Warnings() []string {
	return o.warnings
}

// ShipmentID returns the attached shipment's identifier, nil if none.
func (o *Order) ShipmentID() *kernel.UUID {
	return o.shipmentID
}

// SaleRecordID returns the attached sale record's identifier, nil if none.
func (o *Order) SaleRecordID() *kernel.UUID {
	return o.saleRecordID
}

// InventoryDeducted reports whether stock was already deducted for this
// order. The flag is persisted and checked before deduction so a retried
// completion report can never deduct twice.
func (o *Order) InventoryDeducted() bool {
	return o.inventoryDeducted
}

// SaleRecorded reports whether a sale record was already created.
func (o *Order) SaleRecorded() bool {
	return o.saleRecordID != nil
}

// ApplyImport refreshes the order from a re-delivered shop payload.
// Re-importing a known shop order ID updates, never duplicates: the
// customer snapshot is always refreshed, but line items are replaced only
// while the order is still Imported. Once fulfillment has started, the
// lines backing box selection and inventory deduction are frozen.
func (o *Order) ApplyImport(name string, customer CustomerInfo, lines []Line) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if name != "" {
		o.name = name
	}
	o.customer = customer

	if o.status == Imported && len(lines) > 0 {
		o.lines = lines
	}

	return nil
}

// StartFulfillment moves the order into the Fulfilling status and clears
// any recorded failure. Valid from Imported (first run), Fulfilling
// (idempotent resume), and Failed (retry).
func (o *Order) StartFulfillment() error {
	newStatus, err := o.status.StartFulfillment()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.failureKind = FailureNone
	o.failureDetail = ""
	return nil
}

// AttachShipment links the order to its single shipment.
// A second attach with a different shipment ID is rejected; re-attaching
// the same shipment is a no-op so retried pipelines stay idempotent.
func (o *Order) AttachShipment(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	if o.shipmentID != nil {
		if o.shipmentID.IsEqual(shipmentID) {
			return nil
		}
		return ErrShipmentAlreadyAttached
	}

	o.shipmentID = &shipmentID
	return nil
}

// ReplaceShipment swaps the order's shipment reference after the previous
// one failed. Used when fulfillment restarts from scratch; the failed
// shipment stays in storage for audit but is superseded here so at most
// one usable shipment ever exists per order.
func (o *Order) ReplaceShipment(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	o.shipmentID = &shipmentID
	return nil
}

// MarkPrinted records the successful physical print and moves the order
// to Printed. Only valid while Fulfilling; the caller checks for already
// Printed orders to keep duplicate completion reports no-ops.
func (o *Order) MarkPrinted() error {
	newStatus, err := o.status.MarkPrinted()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkShipped records the external carrier pickup signal.
func (o *Order) MarkShipped() error {
	newStatus, err := o.status.MarkShipped()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Fail records a classified failure and moves the order to Failed.
// The failure kind and detail stay visible to operators until a retry
// clears them via StartFulfillment.
func (o *Order) Fail(kind FailureKind, detail string) error {
	if kind == FailureNone {
		return errs.NewValueIsRequiredError("failure kind")
	}
	if err := kind.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.failureKind = kind
	o.failureDetail = detail
	return nil
}

// Cancel marks the order cancelled on an external signal. Committed
// inventory deduction and sale records are intentionally not reversed:
// they are accounting facts outside the cancellation's reach.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkInventoryDeducted sets the persisted deduction guard flag.
// Calling it twice is harmless; callers must check InventoryDeducted
// before performing the deduction itself.
func (o *Order) MarkInventoryDeducted() {
	o.inventoryDeducted = true
}

// AttachSaleRecord links the order to its single sale record.
// Attaching a second record is rejected to enforce the 0-or-1 relation.
func (o *Order) AttachSaleRecord(saleRecordID kernel.UUID) error {
	if err := saleRecordID.Validate(); err != nil {
		return err
	}

	if o.saleRecordID != nil {
		if o.saleRecordID.IsEqual(saleRecordID) {
			return nil
		}
		return ErrSaleRecordAlreadyAttached
	}

	o.saleRecordID = &saleRecordID
	return nil
}

// RecordWarning appends a non-fatal processing warning, such as a SKU
// with no catalog match. Warnings never change the order's status.
func (o *Order) RecordWarning(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	o.warnings = append(o.warnings, msg)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setShopOrderID(shopOrderID string) error {
	if strings.TrimSpace(shopOrderID) == "" {
		return errs.NewValueIsRequiredError("shopOrderID")
	}
	o.shopOrderID = shopOrderID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	o.lines = lines
	return nil
}
