// Package clock provides the wall-time source and worker identity
// strings used throughout queuectl.
//
// Every timestamp the store persists is UTC, formatted ISO-8601 with a
// trailing Z (time.RFC3339) at second precision or finer. Worker
// identity strings are used only for attribution (job.LockedBy), never
// for exclusion — exclusion is entirely a function of job state.
package clock

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts the wall-clock source so tests can inject a fixed or
// stepped time without sleeping.
type Clock interface {
	Now() time.Time
}

// System is the production Clock, backed by time.Now in UTC.
type System struct{}

// Now returns the current instant in UTC.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Format renders t as ISO-8601 UTC with a trailing Z at second
// precision, the wire format used by spec.md §6.
func Format(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// WorkerID builds the attribution string for the index-th worker
// process launched by the current process, e.g. "worker-4821-2".
func WorkerID(index int) string {
	return fmt.Sprintf("worker-%d-%d", os.Getpid(), index)
}

// NewRunID generates a correlation id attached to every structured log
// record a worker process emits for the lifetime of that process. It
// is purely a logging aid — never used for attribution or exclusion,
// which remain governed by WorkerID and job state respectively.
func NewRunID() string {
	return uuid.NewString()
}
