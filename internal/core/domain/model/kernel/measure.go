package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// GramsPerOunce converts ounce-denominated box capacities to the gram
// weights carried on order lines.
const GramsPerOunce = 28.3495

// Weight is a mass value object stored in grams. Order lines carry weights
// in grams (as delivered by the shop platform), while box capacities are
// configured in ounces; both construct the same Weight.
type Weight struct {
	grams float64
}

// NewWeightGrams creates a Weight from grams. Negative weights are invalid.
func NewWeightGrams(grams float64) (Weight, error) {
	if grams < 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%f grams is negative", grams))
	}
	return Weight{grams: grams}, nil
}

// NewWeightOunces creates a Weight from ounces. Negative weights are invalid.
func NewWeightOunces(ounces float64) (Weight, error) {
	return NewWeightGrams(ounces * GramsPerOunce)
}

// Grams returns the weight in grams.
func (w Weight) Grams() float64 {
	return w.grams
}

// Ounces returns the weight converted to ounces.
func (w Weight) Ounces() float64 {
	return w.grams / GramsPerOunce
}

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{grams: w.grams + other.grams}
}

// Multiply returns the weight scaled by a non-negative quantity.
func (w Weight) Multiply(quantity int) Weight {
	if quantity < 0 {
		quantity = 0
	}
	return Weight{grams: w.grams * float64(quantity)}
}

// IsZero reports whether the weight is exactly zero.
func (w Weight) IsZero() bool {
	return w.grams == 0
}

// Volume is a packing volume value object in cubic inches, matching the
// interior dimensions configured on shipping boxes.
type Volume struct {
	cubicInches float64
}

// NewVolume creates a Volume from cubic inches. Negative volumes are invalid.
func NewVolume(cubicInches float64) (Volume, error) {
	if cubicInches < 0 {
		return Volume{}, errs.NewValueIsInvalidErrorWithCause("volume",
			fmt.Errorf("%f cubic inches is negative", cubicInches))
	}
	return Volume{cubicInches: cubicInches}, nil
}

// CubicInches returns the volume in cubic inches.
func (v Volume) CubicInches() float64 {
	return v.cubicInches
}

// Add returns the sum of two volumes.
func (v Volume) Add(other Volume) Volume {
	return Volume{cubicInches: v.cubicInches + other.cubicInches}
}

// IsZero reports whether the volume is exactly zero.
func (v Volume) IsZero() bool {
	return v.cubicInches == 0
}

// AtLeast reports whether this volume can contain the other.
func (v Volume) AtLeast(other Volume) bool {
	return v.cubicInches >= other.cubicInches
}
