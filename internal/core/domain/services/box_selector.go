package services

import (
	"errors"
	"math"
	"sort"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrNoBoxFits is returned when no active box can hold the order's
// shippable payload. This occurs when either no boxes are configured or
// every configured box fails the weight or volume constraint.
var ErrNoBoxFits = errors.New("no box fits the order")

// GramsPerCubicInch is the packing density used to estimate an order's
// volume from its weight. Product dimensions are not tracked, so the
// estimate assumes roughly nine grams of product per cubic inch of
// packed space.
const GramsPerCubicInch = 9.0

// BoxSelector is a domain service that picks the smallest suitable box
// for an order's shippable payload.
//
// Selection algorithm:
//   - Considers only active boxes
//   - A box qualifies when the payload weight is within its limit and
//     the estimated payload volume fits its inner volume
//   - Among qualifying boxes the smallest inner volume wins
//   - Volume ties go to the lower weight limit, then to the candidate
//     order the caller supplied (repositories order by priority)
type BoxSelector struct{}

// NewBoxSelector creates a new BoxSelector instance.
func NewBoxSelector() BoxSelector {
	return BoxSelector{}
}

// EstimateVolume converts a payload weight into an estimated packed
// volume using the GramsPerCubicInch density.
func (s BoxSelector) EstimateVolume(payload kernel.Weight) kernel.Volume {
	v, _ := kernel.NewVolume(payload.Grams() / GramsPerCubicInch)
	return v
}

// Select picks the box for an order.
//
// Parameters:
//   - o: the order to pack (must be valid)
//   - boxes: candidate boxes in configuration priority order
//
// Returns ErrNoBoxFits when no active candidate qualifies.
func (s BoxSelector) Select(o *order.Order, boxes []*box.Box) (*box.Box, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	payload := o.TotalShippingWeight()
	estimated := s.EstimateVolume(payload)

	type candidate struct {
		box   *box.Box
		index int
	}
	var candidates []candidate

	for i, b := range boxes {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if !b.Active() {
			continue
		}
		if !b.Fits(payload, estimated) {
			continue
		}
		candidates = append(candidates, candidate{box: b, index: i})
	}

	if len(candidates) == 0 {
		return nil, ErrNoBoxFits
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		vi, vj := candidates[i].box.Volume().CubicInches(), candidates[j].box.Volume().CubicInches()
		if vi != vj {
			return vi < vj
		}
		wi, wj := effectiveWeightLimit(candidates[i].box), effectiveWeightLimit(candidates[j].box)
		if wi != wj {
			return wi < wj
		}
		return candidates[i].index < candidates[j].index
	})

	return candidates[0].box, nil
}

// effectiveWeightLimit treats a missing limit as unbounded so that among
// equal-volume boxes the tighter limit wins the tie.
func effectiveWeightLimit(b *box.Box) float64 {
	if b.MaxWeight().IsZero() {
		return math.MaxFloat64
	}
	return b.MaxWeight().Grams()
}
