package printjob

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrPrintJobIsNotConstructed is returned when a PrintJob instance was not
	// created through the NewPrintJob or RestorePrintJob factory functions.
	ErrPrintJobIsNotConstructed = errors.New("PrintJob must be created via NewPrintJob constructor")

	// ErrNotClaimHolder is returned when an agent reports on a job whose
	// claim it does not hold. Callers treat such reports as no-ops.
	ErrNotClaimHolder = errors.New("agent does not hold the claim on this print job")

	// ErrAlreadyCompleted is returned on a completion report for a job
	// already in a final state. Duplicate success reports are expected
	// when an agent retries after a lost response.
	ErrAlreadyCompleted = errors.New("print job is already completed")
)

// State represents the lifecycle state of a print job.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	StateUnknown State = iota

	// StateQueued means the job is waiting for an agent to claim it.
	StateQueued

	// StateClaimed means an agent holds the job under a lease. If the
	// agent never reports back, the lease expires and the job becomes
	// claimable again.
	StateClaimed

	// StateDone means the agent confirmed a successful print. Final.
	StateDone

	// StateFailed means the job exhausted its attempt budget. Only an
	// operator retry returns it to the queue.
	StateFailed
)

func getValidStateStrings() map[State]string {
	return map[State]string{
		StateQueued:  "Queued",
		StateClaimed: "Claimed",
		StateDone:    "Done",
		StateFailed:  "Failed",
	}
}

// Validate checks if the State value is valid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("print job state is invalid",
			fmt.Errorf("%d is not a valid print job state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
func (s State) String() string {
	if str, ok := getValidStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// PrintJob is one queued label print. Jobs are handed to a remote print
// agent under a time-limited claim: the agent that claims a job is the
// only one whose completion report counts, and a claim that outlives its
// lease is treated as abandoned.
//
// Attempts count claims, not failures. A job that keeps getting claimed
// and failing (or claimed and abandoned) runs out of attempts and parks
// in Failed until an operator retries it.
type PrintJob struct {
	id         kernel.UUID
	orderID    kernel.UUID
	shipmentID kernel.UUID

	state     State
	claimedBy string
	claimedAt *time.Time
	attempts  int

	errorDetail string

	createdAt   time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewPrintJob creates a queued print job for a labeled shipment.
func NewPrintJob(
	id kernel.UUID,
	orderID kernel.UUID,
	shipmentID kernel.UUID,
	now time.Time,
) (*PrintJob, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		shipmentID.Validate(),
	); err != nil {
		return nil, err
	}

	return &PrintJob{
		id:            id,
		orderID:       orderID,
		shipmentID:    shipmentID,
		state:         StateQueued,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestorePrintJobParams carries the persisted state needed to reconstruct
// a PrintJob from storage.
type RestorePrintJobParams struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	ShipmentID  kernel.UUID
	State       State
	ClaimedBy   string
	ClaimedAt   *time.Time
	Attempts    int
	ErrorDetail string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// RestorePrintJob reconstructs a PrintJob from persistence.
// Used only by repository implementations.
func RestorePrintJob(p RestorePrintJobParams) (*PrintJob, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.ShipmentID.Validate(),
		p.State.Validate(),
	); err != nil {
		return nil, err
	}

	return &PrintJob{
		id:            p.ID,
		orderID:       p.OrderID,
		shipmentID:    p.ShipmentID,
		state:         p.State,
		claimedBy:     p.ClaimedBy,
		claimedAt:     p.ClaimedAt,
		attempts:      p.Attempts,
		errorDetail:   p.ErrorDetail,
		createdAt:     p.CreatedAt,
		completedAt:   p.CompletedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the PrintJob was constructed through a factory function.
func (j *PrintJob) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrPrintJobIsNotConstructed
	}

	return nil
}

// ID returns the unique identifier.
func (j *PrintJob) ID() kernel.UUID {
	return j.id
}

// OrderID returns the owning order's identifier.
func (j *PrintJob) OrderID() kernel.UUID {
	return j.orderID
}

// ShipmentID returns the shipment whose label this job prints.
func (j *PrintJob) ShipmentID() kernel.UUID {
	return j.shipmentID
}

// State returns the current lifecycle state.
func (j *PrintJob) State() State {
	return j.state
}

// ClaimedBy returns the identity of the claiming agent, empty when unclaimed.
func (j *PrintJob) ClaimedBy() string {
	return j.claimedBy
}

// ClaimedAt returns when the current claim was taken, nil when unclaimed.
func (j *PrintJob) ClaimedAt() *time.Time {
	return j.claimedAt
}

// Attempts returns how many times the job has been claimed.
func (j *PrintJob) Attempts() int {
	return j.attempts
}

// ErrorDetail returns the last reported print error, empty when none.
func (j *PrintJob) ErrorDetail() string {
	return j.errorDetail
}

// CreatedAt returns the enqueue time.
func (j *PrintJob) CreatedAt() time.Time {
	return j.createdAt
}

// CompletedAt returns the successful completion time, nil otherwise.
func (j *PrintJob) CompletedAt() *time.Time {
	return j.completedAt
}

// ClaimExpired reports whether the current claim outlived its lease.
// Always false for unclaimed jobs.
func (j *PrintJob) ClaimExpired(now time.Time, lease time.Duration) bool {
	if j.state != StateClaimed || j.claimedAt == nil {
		return false
	}
	return now.Sub(*j.claimedAt) > lease
}

// Claim hands the job to an agent under a lease. A queued job is always
// claimable; a claimed job is claimable again only once its lease expired.
// Each claim consumes one attempt.
func (j *PrintJob) Claim(agent string, now time.Time, lease time.Duration) error {
	if agent == "" {
		return errs.NewValueIsRequiredError("agent")
	}

	switch j.state {
	case StateQueued:
	case StateClaimed:
		if !j.ClaimExpired(now, lease) {
			return errs.NewValueIsInvalidErrorWithCause("print job state is invalid",
				fmt.Errorf("job is claimed by %q and the lease has not expired", j.claimedBy))
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("print job state is invalid",
			fmt.Errorf("%s is not a valid state to claim", j.state.String()))
	}

	j.state = StateClaimed
	j.claimedBy = agent
	claimedAt := now
	j.claimedAt = &claimedAt
	j.attempts++
	return nil
}

// CompleteSuccess records a successful print report from the claim holder.
// Reports from any other agent return ErrNotClaimHolder; reports on an
// already finished job return ErrAlreadyCompleted.
func (j *PrintJob) CompleteSuccess(agent string, now time.Time) error {
	if j.state == StateDone || j.state == StateFailed {
		return ErrAlreadyCompleted
	}
	if err := j.requireHolder(agent); err != nil {
		return err
	}

	j.state = StateDone
	completedAt := now
	j.completedAt = &completedAt
	j.errorDetail = ""
	return nil
}

// CompleteFailure records a failed print report from the claim holder.
// The job goes back to the queue while attempts remain; once the attempt
// budget is spent it parks in Failed for operator attention.
func (j *PrintJob) CompleteFailure(agent, detail string, maxAttempts int) error {
	if j.state == StateDone || j.state == StateFailed {
		return ErrAlreadyCompleted
	}
	if err := j.requireHolder(agent); err != nil {
		return err
	}

	j.errorDetail = detail
	j.claimedBy = ""
	j.claimedAt = nil

	if j.attempts >= maxAttempts {
		j.state = StateFailed
	} else {
		j.state = StateQueued
	}
	return nil
}

// Release returns an expired claim to the queue without a report.
// Used by the stale-claim sweeper; the consumed attempt is not refunded,
// and a job whose budget is already spent parks in Failed.
func (j *PrintJob) Release(maxAttempts int) error {
	if j.state != StateClaimed {
		return errs.NewValueIsInvalidErrorWithCause("print job state is invalid",
			fmt.Errorf("%s is not a valid state to release", j.state.String()))
	}

	j.claimedBy = ""
	j.claimedAt = nil

	if j.attempts >= maxAttempts {
		j.state = StateFailed
		if j.errorDetail == "" {
			j.errorDetail = "claim expired without a completion report"
		}
	} else {
		j.state = StateQueued
	}
	return nil
}

// RetryFromFailed returns a failed job to the queue with a fresh attempt
// budget. Operator action only.
func (j *PrintJob) RetryFromFailed() error {
	if j.state != StateFailed {
		return errs.NewValueIsInvalidErrorWithCause("print job state is invalid",
			fmt.Errorf("%s is not a valid state to retry", j.state.String()))
	}

	j.state = StateQueued
	j.attempts = 0
	j.errorDetail = ""
	j.claimedBy = ""
	j.claimedAt = nil
	return nil
}

func (j *PrintJob) requireHolder(agent string) error {
	if j.state != StateClaimed || j.claimedBy != agent {
		return ErrNotClaimHolder
	}
	return nil
}
