package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"
)

// LabelRenderer purchases a shipping label for a previously quoted rate
// and returns the printable payload with its tracking data.
type LabelRenderer interface {
	// PurchaseLabel buys the label for the rate identified by its
	// payload reference. The returned label payload is the raw bytes to
	// hand to the printer.
	PurchaseLabel(ctx context.Context, rate shipment.Rate) (shipment.Label, error)
}
