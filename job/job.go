package job

import "time"

// Job represents a persisted record managed by the queue's store.
//
// CreatedAt records when the job was first enqueued. UpdatedAt records
// the last state transition.
//
// Attempts counts executions that have completed (successful or not)
// for this job. It resets to 0 only when an operator requeues a Dead
// job back to Pending.
//
// MaxRetries is a pointer so the store can tell "caller left it
// unset" (nil) apart from "caller explicitly passed 0" (dies on first
// failure). A nil MaxRetries is filled from the default-max-retries
// config value at insert time; once persisted it is never nil again.
//
// LockedBy and LockedAt are attribution only: they record which worker
// claimed the job and when while it is Processing, and the store clears
// them when Complete or Fail moves the job on. They play no role in the
// claim protocol itself (that is governed entirely by State).
//
// NextRunAt is the earliest instant a Failed job may be retried; it is
// cleared on success and on DLQ requeue. RunAt is the earliest instant
// a job may first run at all, set once at enqueue time and never
// changed afterward.
//
// Output holds the last captured combined stdout+stderr, updated on
// every terminal or retry-scheduling transition. OutputFile is an
// optional caller-supplied path, carried through but not interpreted
// by the store or worker.
type Job struct {
	ID         string
	Command    string
	State      Status
	Attempts   uint32
	MaxRetries *uint32
	Priority   int
	Tags       string
	RunAt      *time.Time
	NextRunAt  *time.Time
	LockedBy   string
	LockedAt   *time.Time
	Output     string
	OutputFile string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Eligible reports whether the job could be claimed right now, given
// the provided instant. It mirrors the store's claim predicate exactly
// so callers can reason about readiness without a round trip.
func (j *Job) Eligible(now time.Time) bool {
	if !j.State.Eligible() {
		return false
	}
	if j.RunAt != nil && j.RunAt.After(now) {
		return false
	}
	if j.NextRunAt != nil && j.NextRunAt.After(now) {
		return false
	}
	return true
}
