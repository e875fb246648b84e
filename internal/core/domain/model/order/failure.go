package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// FailureKind classifies why an order's fulfillment failed. The kind is
// recorded on the order so an operator knows whether to retry, wait, or
// intervene manually, instead of seeing a generic error flag.
type FailureKind string

const (
	// FailureNone is the zero value: the order carries no failure.
	FailureNone FailureKind = ""

	// FailureNoBoxFits: no configured box satisfies the order's weight and
	// volume. Requires adding a box or splitting the order; not retryable
	// as-is.
	FailureNoBoxFits FailureKind = "no_box_fits"

	// FailureRateFetch: the carrier rate collaborator was unreachable or
	// errored. Transient; retrying the pipeline is expected to succeed.
	FailureRateFetch FailureKind = "rate_fetch_failed"

	// FailureNoRateAvailable: the collaborator answered but no permitted
	// rate remained after the exclusion filter. Permanent for the current
	// order snapshot; retrying without changing configuration is pointless.
	FailureNoRateAvailable FailureKind = "no_rate_available"

	// FailureLabelGeneration: label purchase or download failed.
	// Retryable by restarting fulfillment from scratch.
	FailureLabelGeneration FailureKind = "label_generation_failed"

	// FailurePrint: the print job exhausted its retry budget.
	// Requires operator attention at the printer.
	FailurePrint FailureKind = "print_failed"

	// FailureInventoryDeduction: stock deduction errored after printing.
	// Retrying the completion report must not re-run upstream steps.
	FailureInventoryDeduction FailureKind = "inventory_deduction_failed"

	// FailureCustomerUpsert: the customer record upsert errored.
	// Never rolls back an already-committed inventory deduction.
	FailureCustomerUpsert FailureKind = "customer_upsert_failed"

	// FailureSaleRecord: sale record creation errored.
	// Never rolls back inventory deduction or the customer upsert.
	FailureSaleRecord FailureKind = "sale_record_failed"
)

func getValidFailureKinds() map[FailureKind]struct{} {
	return map[FailureKind]struct{}{
		FailureNone:               {},
		FailureNoBoxFits:          {},
		FailureRateFetch:          {},
		FailureNoRateAvailable:    {},
		FailureLabelGeneration:    {},
		FailurePrint:              {},
		FailureInventoryDeduction: {},
		FailureCustomerUpsert:     {},
		FailureSaleRecord:         {},
	}
}

// Validate checks that the failure kind is one of the defined values.
func (k FailureKind) Validate() error {
	if _, ok := getValidFailureKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("failure kind is invalid",
			fmt.Errorf("%q is not a valid failure kind", string(k)))
	}
	return nil
}

// String returns the stored representation of the failure kind.
func (k FailureKind) String() string {
	return string(k)
}

// Retryable reports whether re-running the pipeline automatically is
// expected to make progress. Transport-level failures are retryable;
// failures that need configuration or operator changes are not.
func (k FailureKind) Retryable() bool {
	switch k {
	case FailureRateFetch, FailureLabelGeneration,
		FailureInventoryDeduction, FailureCustomerUpsert, FailureSaleRecord:
		return true
	default:
		return false
	}
}
