// Package queuectl is a durable, single-host job queue: clients enqueue
// shell-command jobs, a pool of worker processes claims and executes
// them under a timeout, and failures are retried with exponential
// backoff until a bounded attempt ceiling sends the job to a
// dead-letter queue an operator can requeue from.
//
// # Overview
//
// queuectl separates the caller-facing enqueue request (enqueue.Request)
// from the durable lifecycle record (job.Job) and defines a single
// Store interface that storage backends implement to provide atomic
// claim, completion, failure, and dead-letter transitions.
//
// # Delivery semantics
//
// Failed executions are retried, so a command may run more than once.
// Handlers are plain shell commands, not required to be idempotent by
// the queue itself, but any command that is not idempotent must be
// enqueued with that risk in mind. A worker that dies between claim
// and completion leaves its job in Processing indefinitely, and the
// job is not run again (see the package-level note on orphan recovery
// below).
//
// # State machine
//
// Jobs follow this lifecycle:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed      (retry scheduled)
//	Failed     -> Processing
//	Processing -> Dead        (retries exhausted)
//	Dead       -> Pending     (operator requeue only, via the DLQ API)
//
// Completed and Dead are terminal: no transition leaves them except an
// explicit operator requeue from Dead.
//
// # Retry policy
//
// Retry behavior is controlled by the retry package and a job's
// MaxRetries (or the store's default-max-retries config key when
// unset). When an execution fails, the job is rescheduled with a
// computed backoff delay unless the retry ceiling has been reached, in
// which case it transitions to Dead.
//
// # Orphan recovery
//
// If a worker process dies between claim and completion, the row
// stays in Processing indefinitely. This package does not attempt
// automatic recovery; operators see the stuck row via List/Counts.
package queuectl

import "errors"

// Error kinds surfaced by the core. Store implementations should wrap
// these with fmt.Errorf("%w: ...", ...) or errors.Join so callers can
// still match with errors.Is.
var (
	// ErrMalformedJob indicates enqueue input was not parseable JSON or
	// was missing a required field (id or command).
	ErrMalformedJob = errors.New("queuectl: malformed job")

	// ErrDuplicate indicates Store.InsertJob was called with an id that
	// already exists.
	ErrDuplicate = errors.New("queuectl: duplicate job id")

	// ErrNotFound indicates no job exists with the requested id.
	ErrNotFound = errors.New("queuectl: job not found")

	// ErrWrongState indicates an operation requires the job to be in a
	// specific state (for example, DLQ requeue requires Dead) and it is
	// not.
	ErrWrongState = errors.New("queuectl: job not in required state")
)

// StoreError wraps a backend failure from any Store operation other
// than Claim (whose transient contention is swallowed and reported as
// "nothing eligible", never an error). The wrapped job, if any, is left
// unchanged by the failed operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "queuectl: store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a StoreError attributed to op. It returns
// nil if err is nil, so it is safe to use as a one-line return
// transform: return queuectl.NewStoreError("claim", err).
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
