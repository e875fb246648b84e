package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the fulfillment workflow from import through shipping.
//
// State transitions:
//
//	Imported ──> Fulfilling ──> Printed ──> Shipped
//	    │             │            │
//	    │         (pipeline     (carrier
//	    │          failure)      signal)
//	    │             v
//	    └────────> Failed ───> Fulfilling (operator retry)
//
//	Cancelled is reachable from every state except Shipped.
//	Failed is reachable from every non-terminal state.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Imported is the initial status after an order arrives from the shop.
	// Orders in this status are waiting for the fulfillment pipeline.
	Imported

	// Fulfilling indicates the pipeline has started: box selection, rate
	// shopping, label purchase, and print job creation happen here. The
	// order stays Fulfilling until its label print is confirmed.
	Fulfilling

	// Printed indicates the label was physically printed and the
	// post-fulfillment bookkeeping (inventory, customer, sale record) ran.
	Printed

	// Shipped indicates the carrier picked up the package. Final state.
	Shipped

	// Failed indicates a pipeline step failed; the specific FailureKind is
	// recorded on the order. Failed orders can re-enter Fulfilling.
	Failed

	// Cancelled indicates an external cancellation signal. Final state.
	// Committed inventory and sale records are not reversed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Imported:   "Imported",
		Fulfilling: "Fulfilling",
		Printed:    "Printed",
		Shipped:    "Shipped",
		Failed:     "Failed",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Imported:   "Imported",
		Fulfilling: "Fulfilling",
		Printed:    "Printed",
		Shipped:    "Shipped",
		Failed:     "Failed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
// Shipped and Cancelled are the two terminal states; Failed is not
// terminal because the pipeline can be re-entered.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// StartFulfillment transitions the status to Fulfilling.
//
// Valid transitions:
//   - Imported -> Fulfilling (pipeline start)
//   - Fulfilling -> Fulfilling (idempotent resume of a partially completed pipeline)
//   - Failed -> Fulfilling (operator retry)
func (s Status) StartFulfillment() (Status, error) {
	if s != Imported && s != Fulfilling && s != Failed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start fulfillment", s.String()),
		)
	}

	return Fulfilling, nil
}

// MarkPrinted transitions the status to Printed.
// Only a Fulfilling order can become Printed; the edge is driven
// exclusively by a successful print job completion report.
func (s Status) MarkPrinted() (Status, error) {
	if s != Fulfilling {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark printed", s.String()),
		)
	}

	return Printed, nil
}

// MarkShipped transitions the status to Shipped.
// Only a Printed order can be shipped; the edge is driven by an
// external carrier/tracking signal.
func (s Status) MarkShipped() (Status, error) {
	if s != Printed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark shipped", s.String()),
		)
	}

	return Shipped, nil
}

// Fail transitions the status to Failed.
// Allowed from any non-terminal state.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return Failed, nil
}

// Cancel transitions the status to Cancelled.
// Allowed from every state before Shipped; a shipped order cannot be
// cancelled, and cancelling twice is invalid.
func (s Status) Cancel() (Status, error) {
	if s == Shipped || s == Cancelled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
