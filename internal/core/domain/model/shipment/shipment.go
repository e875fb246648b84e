package shipment

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through the NewShipment or RestoreShipment factory functions.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Status represents the lifecycle state of a shipment.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the rate was chosen but no label exists yet.
	StatusPending

	// StatusLabeled means the label was purchased and its payload stored.
	StatusLabeled

	// StatusFailed means label purchase failed; the shipment is kept for
	// audit and superseded by a fresh one when fulfillment restarts.
	StatusFailed
)

func getValidShipmentStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPending: "Pending",
		StatusLabeled: "Labeled",
		StatusFailed:  "Failed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidShipmentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getValidShipmentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Shipment records one box with one chosen rate for one order, plus the
// purchased label once it exists. An order has at most one usable
// shipment; failed attempts stay in storage but are superseded.
type Shipment struct {
	id      kernel.UUID
	orderID kernel.UUID
	boxID   kernel.UUID

	rate        Rate
	totalWeight kernel.Weight

	status      Status
	labelData   []byte
	labelFormat LabelFormat

	trackingNumber string
	trackingURL    string

	isConstructed bool
}

// NewShipment creates a pending shipment for the given order, box, and
// chosen rate. The total weight is the shippable payload plus the box
// tare weight, as quoted to the carrier.
func NewShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	boxID kernel.UUID,
	rate Rate,
	totalWeight kernel.Weight,
) (*Shipment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		boxID.Validate(),
	); err != nil {
		return nil, err
	}

	if rate.IsZero() {
		return nil, errs.NewValueIsRequiredError("rate")
	}

	return &Shipment{
		id:            id,
		orderID:       orderID,
		boxID:         boxID,
		rate:          rate,
		totalWeight:   totalWeight,
		status:        StatusPending,
		isConstructed: true,
	}, nil
}

// RestoreShipmentParams carries the persisted state needed to reconstruct
// a Shipment from storage.
type RestoreShipmentParams struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	BoxID          kernel.UUID
	Rate           Rate
	TotalWeight    kernel.Weight
	Status         Status
	LabelData      []byte
	LabelFormat    LabelFormat
	TrackingNumber string
	TrackingURL    string
}

// RestoreShipment reconstructs a Shipment from persistence.
// Used only by repository implementations.
func RestoreShipment(p RestoreShipmentParams) (*Shipment, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.BoxID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Shipment{
		id:             p.ID,
		orderID:        p.OrderID,
		boxID:          p.BoxID,
		rate:           p.Rate,
		totalWeight:    p.TotalWeight,
		status:         p.Status,
		labelData:      p.LabelData,
		labelFormat:    p.LabelFormat,
		trackingNumber: p.TrackingNumber,
		trackingURL:    p.TrackingURL,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Shipment was constructed through a factory function.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}

	return nil
}

// ID returns the unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the owning order's identifier.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// BoxID returns the selected box's identifier.
func (s *Shipment) BoxID() kernel.UUID {
	return s.boxID
}

// Rate returns the chosen rate.
func (s *Shipment) Rate() Rate {
	return s.rate
}

// TotalWeight returns the weight quoted to the carrier.
func (s *Shipment) TotalWeight() kernel.Weight {
	return s.totalWeight
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// LabelData returns the raw label payload, nil before AttachLabel.
func (s *Shipment) LabelData() []byte {
	return s.labelData
}

// LabelFormat returns the sniffed format of the label payload.
func (s *Shipment) LabelFormat() LabelFormat {
	return s.labelFormat
}

// TrackingNumber returns the carrier tracking number, empty before labeling.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// TrackingURL returns the carrier tracking page URL, possibly empty.
func (s *Shipment) TrackingURL() string {
	return s.trackingURL
}

// IsUsable reports whether this shipment carries a printable label.
func (s *Shipment) IsUsable() bool {
	return s.status == StatusLabeled
}

// AttachLabel stores the purchased label and moves the shipment to
// Labeled. Only a pending shipment accepts a label; the payload format is
// sniffed here so downstream consumers never re-detect it.
func (s *Shipment) AttachLabel(label Label) error {
	if s.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
			fmt.Errorf("%s is not a valid status to attach a label", s.status.String()))
	}
	if len(label.Payload) == 0 {
		return errs.NewValueIsRequiredError("label payload")
	}

	s.labelData = label.Payload
	s.labelFormat = DetectLabelFormat(label.Payload)
	s.trackingNumber = label.TrackingNumber
	s.trackingURL = label.TrackingURL
	s.status = StatusLabeled
	return nil
}

// MarkFailed records that label purchase failed for this shipment.
func (s *Shipment) MarkFailed() error {
	if s.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
			fmt.Errorf("%s is not a valid status to mark failed", s.status.String()))
	}

	s.status = StatusFailed
	return nil
}
