package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// RateRequest describes one parcel to quote: where it ships, its outer
// dimensions, and the total weight including the box itself.
type RateRequest struct {
	ToName    string
	ToPhone   string
	ToAddress kernel.Address

	LengthIn float64
	WidthIn  float64
	HeightIn float64
	Weight   kernel.Weight
}

// RateProvider quotes shipping rates from an external carrier aggregator.
// A transport or upstream error is a fetch failure; an empty quote is a
// valid answer and is handled by the rate shopper.
type RateProvider interface {
	GetRates(ctx context.Context, req RateRequest) ([]shipment.Rate, error)
}
