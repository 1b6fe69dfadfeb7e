package dlq

import (
	"context"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
)

// API is the administrative surface over the dead-letter queue. It
// does not add any semantics of its own; it narrows queuectl.Store to
// the two operations an operator needs.
type API struct {
	store queuectl.Store
	clock func() time.Time
}

// New wraps store. now is used to stamp the requeue transition; pass
// time.Now if unsure.
func New(store queuectl.Store, now func() time.Time) *API {
	return &API{store: store, clock: now}
}

// ListDead returns every job currently in the Dead state, ordered by
// priority desc, created_at asc like any other List call.
func (a *API) ListDead(ctx context.Context) ([]*job.Job, error) {
	return a.store.List(ctx, job.Dead)
}

// Retry moves a Dead job back to Pending, resetting Attempts to 0 and
// clearing NextRunAt, per spec.md §4.6. It returns queuectl.ErrWrongState
// if the job is not currently Dead, or queuectl.ErrNotFound if it does
// not exist.
func (a *API) Retry(ctx context.Context, id string) error {
	return a.store.MoveDeadToPending(ctx, id, a.clock())
}
