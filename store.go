package queuectl

import (
	"context"
	"time"

	"github.com/queuectl/queuectl/job"
)

// Enqueuer is the write-side entry point of the store.
//
// Grounded on the teacher's Pusher interface, generalized from a
// generic transport message to a shell-command enqueue request.
type Enqueuer interface {
	// InsertJob persists a new record in Pending state (unless the
	// caller supplied another state explicitly). If j.MaxRetries is
	// nil, it is filled from the default-max-retries config value at
	// insert time; an explicit 0 is kept. InsertJob returns ErrDuplicate
	// if j.ID already exists.
	InsertJob(ctx context.Context, j *job.Job) error
}

// Claimer is the read-write contract for consuming and managing jobs
// through their lifecycle.
//
// Grounded on the teacher's Puller interface; the visibility-timeout
// lease model is replaced by the spec's simpler "attribution only,
// exclusion is by state" claim protocol (spec.md §4.1, §9).
type Claimer interface {
	// Claim atomically selects the single highest-priority, oldest
	// eligible job (State in {Pending, Failed}, RunAt and NextRunAt
	// null-or-past relative to now) and transitions it to Processing,
	// recording workerID and now as LockedBy/LockedAt. It returns
	// (nil, nil) when nothing is eligible or the conditional update lost
	// a race to a peer worker — both are normal outcomes, never errors.
	Claim(ctx context.Context, workerID string, now time.Time) (*job.Job, error)

	// Complete transitions a Processing job to Completed, recording
	// output. Calling Complete on a job not currently Processing is
	// implementation-defined but must not corrupt state.
	Complete(ctx context.Context, id string, output string, now time.Time) error

	// Fail applies the retry policy to a Processing job: it transitions
	// to Dead if newAttempts >= maxRetries, else to Failed with
	// NextRunAt set per the backoff policy. If maxRetries is nil, the
	// store substitutes the default-max-retries config value.
	Fail(ctx context.Context, id string, newAttempts uint32, maxRetries *uint32, backoffBase int, output string, now time.Time) error
}

// Observer provides read-only access to jobs and counts.
//
// Grounded on the teacher's Observer interface.
type Observer interface {
	// Get returns the job identified by id, or (nil, nil) if no such
	// job exists.
	Get(ctx context.Context, id string) (*job.Job, error)

	// List returns jobs ordered by priority desc, created_at asc. If
	// status is job.Unknown, no status filter is applied.
	List(ctx context.Context, status job.Status) ([]*job.Job, error)

	// Counts returns the number of jobs in each state. States with no
	// rows are reported as 0.
	Counts(ctx context.Context) (map[job.Status]int64, error)
}

// DLQMover moves a job out of the dead-letter queue.
type DLQMover interface {
	// MoveDeadToPending transitions a Dead job back to Pending, resets
	// Attempts to 0, and clears NextRunAt. It returns ErrWrongState if
	// the job is not currently Dead, or ErrNotFound if it does not
	// exist.
	MoveDeadToPending(ctx context.Context, id string, now time.Time) error
}

// ConfigStore is the key-value configuration map backing
// default-max-retries, backoff-base, and job-timeout.
type ConfigStore interface {
	// GetConfig returns the value for key, or "" if unset.
	GetConfig(ctx context.Context, key string) (string, error)

	// SetConfig inserts or replaces the value for key.
	SetConfig(ctx context.Context, key, value string) error
}

// Purger provides retention cleanup of terminal jobs.
//
// Grounded on the teacher's Cleaner interface; restricted the same way
// to terminal states so a retention sweep can never touch a job a
// worker still owns.
type Purger interface {
	// Purge deletes jobs matching status whose UpdatedAt is at or
	// before before, and returns the number of rows removed. status
	// must be a terminal state (Completed or Dead); ErrWrongState is
	// returned otherwise. A nil before applies no time filter.
	Purge(ctx context.Context, status job.Status, before *time.Time) (int64, error)
}

// Store is the full durable persistence contract required by the
// worker loop, the CLI, and the metrics server. It composes the
// narrower interfaces above so implementations (and test doubles) can
// satisfy only the slice they need, while application code depends on
// the whole.
type Store interface {
	Enqueuer
	Claimer
	Observer
	DLQMover
	ConfigStore
	Purger

	// Init ensures schema and seed config exist. It must be idempotent
	// and safe to call from every process before first use. A nil seed
	// falls back to DefaultConfig(); existing config rows are never
	// overwritten.
	Init(ctx context.Context, seed map[string]string) error
}
