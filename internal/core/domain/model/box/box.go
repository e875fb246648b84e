package box

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrBoxIsNotConstructed is returned when a Box instance was not created
// through the NewBox or RestoreBox factory functions.
var ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox constructor")

// Box is a configured shipping box: inner dimensions, a weight limit, the
// tare weight of the empty box, and a priority used to break ties between
// boxes of equal volume. Boxes are configuration entities; orders reference
// them only through the shipment built from the selection.
type Box struct {
	id       kernel.UUID
	name     string
	lengthIn float64
	widthIn  float64
	heightIn float64

	// maxWeight zero means the box carries no weight limit.
	maxWeight kernel.Weight
	boxWeight kernel.Weight

	priority int
	active   bool

	isConstructed bool
}

// NewBox creates a validated Box.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name, e.g. "12x9x3 mailer"
//   - lengthIn, widthIn, heightIn: inner dimensions in inches, all positive
//   - maxWeight: heaviest payload the box may carry; zero means unlimited
//   - boxWeight: tare weight of the empty box, added to every rate request
//   - priority: tie-break rank, lower wins among equal-volume boxes
func NewBox(
	id kernel.UUID,
	name string,
	lengthIn, widthIn, heightIn float64,
	maxWeight kernel.Weight,
	boxWeight kernel.Weight,
	priority int,
) (*Box, error) {
	b := &Box{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setDimensions(lengthIn, widthIn, heightIn),
	); err != nil {
		return nil, err
	}

	b.maxWeight = maxWeight
	b.boxWeight = boxWeight
	b.priority = priority
	return b, nil
}

// RestoreBox reconstructs a Box from persistence.
// Used only by repository implementations.
func RestoreBox(
	id kernel.UUID,
	name string,
	lengthIn, widthIn, heightIn float64,
	maxWeight kernel.Weight,
	boxWeight kernel.Weight,
	priority int,
	active bool,
) (*Box, error) {
	b, err := NewBox(id, name, lengthIn, widthIn, heightIn, maxWeight, boxWeight, priority)
	if err != nil {
		return nil, err
	}

	b.active = active
	return b, nil
}

// Validate ensures the Box was constructed through a factory function.
func (b *Box) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBoxIsNotConstructed
	}

	return nil
}

// IsEqual compares two boxes by their identifiers.
func (b *Box) IsEqual(other *Box) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the unique identifier.
func (b *Box) ID() kernel.UUID {
	return b.id
}

// Name returns the display name.
func (b *Box) Name() string {
	return b.name
}

// LengthIn returns the inner length in inches.
func (b *Box) LengthIn() float64 {
	return b.lengthIn
}

// WidthIn returns the inner width in inches.
func (b *Box) WidthIn() float64 {
	return b.widthIn
}

// HeightIn returns the inner height in inches.
func (b *Box) HeightIn() float64 {
	return b.heightIn
}

// MaxWeight returns the payload weight limit, zero when unlimited.
func (b *Box) MaxWeight() kernel.Weight {
	return b.maxWeight
}

// BoxWeight returns the tare weight of the empty box.
func (b *Box) BoxWeight() kernel.Weight {
	return b.boxWeight
}

// Priority returns the tie-break rank; lower wins.
func (b *Box) Priority() int {
	return b.priority
}

// Active reports whether the box participates in selection.
func (b *Box) Active() bool {
	return b.active
}

// Deactivate removes the box from selection without deleting its
// configuration; existing shipments keep referencing it.
func (b *Box) Deactivate() {
	b.active = false
}

// Activate returns the box to the selection pool.
func (b *Box) Activate() {
	b.active = true
}

// Volume returns the inner volume of the box.
func (b *Box) Volume() kernel.Volume {
	v, _ := kernel.NewVolume(b.lengthIn * b.widthIn * b.heightIn)
	return v
}

// Fits reports whether a payload of the given weight and estimated volume
// fits in this box. A zero MaxWeight imposes no weight constraint.
func (b *Box) Fits(payload kernel.Weight, estimated kernel.Volume) bool {
	if !b.maxWeight.IsZero() && payload.Grams() > b.maxWeight.Grams() {
		return false
	}
	return b.Volume().AtLeast(estimated)
}

func (b *Box) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Box) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	b.name = name
	return nil
}

func (b *Box) setDimensions(lengthIn, widthIn, heightIn float64) error {
	for _, d := range []struct {
		name  string
		value float64
	}{
		{"length", lengthIn},
		{"width", widthIn},
		{"height", heightIn},
	} {
		if d.value <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("dimensions are invalid",
				fmt.Errorf("%s %f is not greater than 0", d.name, d.value))
		}
	}

	b.lengthIn = lengthIn
	b.widthIn = widthIn
	b.heightIn = heightIn
	return nil
}
