package services

import (
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/shipment"
)

// ErrNoRateAvailable is returned when no permitted rate remains after the
// exclusion filter. This differs from a rate fetch failure: the carrier
// collaborator answered, there is just nothing allowed to buy.
var ErrNoRateAvailable = errors.New("no rate available")

// ExcludedService names one carrier service that must never be bought.
// Matching is exact and case-sensitive on both fields.
type ExcludedService struct {
	Carrier string
	Service string
}

// RateShopper is a domain service that picks the cheapest permitted rate
// from a carrier quote.
//
// Selection algorithm:
//   - Drops every rate on the exclusion list
//   - Cheapest amount wins
//   - Amount ties go to the lexically smaller carrier name, then to the
//     lexically smaller service name
type RateShopper struct {
	excluded []ExcludedService
}

// NewRateShopper creates a RateShopper with the configured exclusion list.
func NewRateShopper(excluded []ExcludedService) RateShopper {
	return RateShopper{excluded: excluded}
}

// Choose picks the cheapest permitted rate.
// Returns ErrNoRateAvailable when nothing survives the filter.
func (s RateShopper) Choose(rates []shipment.Rate) (shipment.Rate, error) {
	permitted := make([]shipment.Rate, 0, len(rates))
	for _, r := range rates {
		if r.IsZero() || s.isExcluded(r) {
			continue
		}
		permitted = append(permitted, r)
	}

	if len(permitted) == 0 {
		return shipment.Rate{}, ErrNoRateAvailable
	}

	sort.SliceStable(permitted, func(i, j int) bool {
		if permitted[i].Amount() != permitted[j].Amount() {
			return permitted[i].Amount() < permitted[j].Amount()
		}
		if permitted[i].Carrier() != permitted[j].Carrier() {
			return permitted[i].Carrier() < permitted[j].Carrier()
		}
		return permitted[i].Service() < permitted[j].Service()
	})

	return permitted[0], nil
}

func (s RateShopper) isExcluded(r shipment.Rate) bool {
	for _, e := range s.excluded {
		if r.Carrier() == e.Carrier && r.Service() == e.Service {
			return true
		}
	}
	return false
}
