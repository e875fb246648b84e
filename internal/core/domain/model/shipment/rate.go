package shipment

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Rate is a priced shipping option quoted by the carrier collaborator.
// The payload reference is the collaborator's opaque identifier for the
// quote; purchasing a label requires passing it back verbatim.
type Rate struct {
	carrier    string
	service    string
	amount     float64
	currency   string
	payloadRef string
}

// NewRate creates a validated Rate.
func NewRate(carrier, service string, amount float64, currency, payloadRef string) (Rate, error) {
	if err := errors.Join(
		requireNonBlank("carrier", carrier),
		requireNonBlank("service", service),
		requireNonBlank("payloadRef", payloadRef),
		validateAmount(amount),
	); err != nil {
		return Rate{}, err
	}

	if currency == "" {
		currency = "USD"
	}

	return Rate{
		carrier:    carrier,
		service:    service,
		amount:     amount,
		currency:   currency,
		payloadRef: payloadRef,
	}, nil
}

// Carrier returns the carrier name, e.g. "USPS".
func (r Rate) Carrier() string {
	return r.carrier
}

// Service returns the service level name, e.g. "Priority Mail".
func (r Rate) Service() string {
	return r.service
}

// Amount returns the quoted cost.
func (r Rate) Amount() float64 {
	return r.amount
}

// Currency returns the quote currency, "USD" when the quote omitted it.
func (r Rate) Currency() string {
	return r.currency
}

// PayloadRef returns the collaborator's identifier for this quote.
func (r Rate) PayloadRef() string {
	return r.payloadRef
}

// IsZero reports whether the rate is the zero value.
func (r Rate) IsZero() bool {
	return r == Rate{}
}

func requireNonBlank(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func validateAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%f is negative", amount))
	}
	return nil
}
