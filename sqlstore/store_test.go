package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
)

func newJob(id string, priority int) *job.Job {
	return &job.Job{
		ID:       id,
		Command:  "echo " + id,
		Priority: priority,
	}
}

func TestInsertAndClaim(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	j := newJob("a", 0)
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}

	claimed, err := s.Claim(ctx, "worker-1-0", now)
	if err != nil {
		t.Fatal(err)
	}
	if claimed == nil {
		t.Fatal("expected a claimed job, got nil")
	}
	if claimed.State != job.Processing {
		t.Fatalf("expected Processing, got %v", claimed.State)
	}
	if claimed.LockedBy != "worker-1-0" {
		t.Fatalf("expected locked_by worker-1-0, got %q", claimed.LockedBy)
	}

	again, err := s.Claim(ctx, "worker-1-1", now)
	if err != nil {
		t.Fatal(err)
	}
	if again != nil {
		t.Fatalf("expected no second job to claim, got %v", again)
	}
}

func TestClaimOrdersByPriority(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.InsertJob(ctx, newJob("low", 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertJob(ctx, newJob("high", 10)); err != nil {
		t.Fatal(err)
	}

	claimed, err := s.Claim(ctx, "worker-1-0", now)
	if err != nil {
		t.Fatal(err)
	}
	if claimed == nil || claimed.ID != "high" {
		t.Fatalf("expected to claim the higher priority job first, got %v", claimed)
	}
}

func TestClaimSkipsNotYetReady(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	future := now.Add(time.Hour)

	j := newJob("delayed", 0)
	j.RunAt = &future
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}

	claimed, err := s.Claim(ctx, "worker-1-0", now)
	if err != nil {
		t.Fatal(err)
	}
	if claimed != nil {
		t.Fatalf("expected no eligible job, got %v", claimed)
	}

	claimed, err = s.Claim(ctx, "worker-1-0", future.Add(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if claimed == nil {
		t.Fatal("expected job to become eligible after run_at elapses")
	}
}

func TestCompleteRequiresProcessing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	j := newJob("a", 0)
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}

	// Not yet claimed, so the guarded UPDATE should affect no rows and
	// the job should remain Pending.
	if err := s.Complete(ctx, "a", "ok", now); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Pending {
		t.Fatalf("expected state to remain Pending, got %v", got.State)
	}

	if _, err := s.Claim(ctx, "worker-1-0", now); err != nil {
		t.Fatal(err)
	}
	if err := s.Complete(ctx, "a", "ok", now); err != nil {
		t.Fatal(err)
	}
	got, err = s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Completed {
		t.Fatalf("expected Completed, got %v", got.State)
	}
	if got.Output != "ok" {
		t.Fatalf("expected output %q, got %q", "ok", got.Output)
	}
}

func TestFailSchedulesRetryThenDies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	j := newJob("a", 0)
	limit := uint32(2)
	j.MaxRetries = &limit
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Claim(ctx, "worker-1-0", now); err != nil {
		t.Fatal(err)
	}
	if err := s.Fail(ctx, "a", 1, &limit, 2, "boom", now); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Failed {
		t.Fatalf("expected Failed after attempt 1 of 2, got %v", got.State)
	}
	if got.NextRunAt == nil {
		t.Fatal("expected NextRunAt to be set")
	}

	if _, err := s.Claim(ctx, "worker-1-0", got.NextRunAt.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	if err := s.Fail(ctx, "a", 2, &limit, 2, "boom again", got.NextRunAt.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	got, err = s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Dead {
		t.Fatalf("expected Dead after reaching max_retries, got %v", got.State)
	}
	if got.NextRunAt != nil {
		t.Fatal("expected NextRunAt to be cleared once dead")
	}
}

func TestMoveDeadToPendingResetsAttempts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	j := newJob("a", 0)
	limit := uint32(1)
	j.MaxRetries = &limit
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Claim(ctx, "worker-1-0", now); err != nil {
		t.Fatal(err)
	}
	if err := s.Fail(ctx, "a", 1, &limit, 2, "boom", now); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Dead {
		t.Fatalf("expected Dead, got %v", got.State)
	}

	if err := s.MoveDeadToPending(ctx, "a", now); err != nil {
		t.Fatal(err)
	}
	got, err = s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Pending {
		t.Fatalf("expected Pending, got %v", got.State)
	}
	if got.Attempts != 0 {
		t.Fatalf("expected attempts reset to 0, got %d", got.Attempts)
	}
}

func TestMoveDeadToPendingRejectsNonDead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	j := newJob("a", 0)
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}

	err := s.MoveDeadToPending(ctx, "a", now)
	if err != queuectl.ErrWrongState {
		t.Fatalf("expected ErrWrongState, got %v", err)
	}

	err = s.MoveDeadToPending(ctx, "missing", now)
	if err != queuectl.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertJobDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertJob(ctx, newJob("a", 0)); err != nil {
		t.Fatal(err)
	}
	err := s.InsertJob(ctx, newJob("a", 0))
	if err != queuectl.ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestListFiltersByState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.InsertJob(ctx, newJob("a", 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertJob(ctx, newJob("b", 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Claim(ctx, "worker-1-0", now); err != nil {
		t.Fatal(err)
	}

	pending, err := s.List(ctx, job.Pending)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending job, got %d", len(pending))
	}

	all, err := s.List(ctx, job.Unknown)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs total, got %d", len(all))
	}
}

func TestCountsReportsZeroForEmptyStates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertJob(ctx, newJob("a", 0)); err != nil {
		t.Fatal(err)
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts[job.Pending] != 1 {
		t.Fatalf("expected 1 pending, got %d", counts[job.Pending])
	}
	if counts[job.Dead] != 0 {
		t.Fatalf("expected 0 dead, got %d", counts[job.Dead])
	}
}

func TestConfigGetSetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.GetConfig(ctx, queuectl.ConfigBackoffBase)
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Fatal("expected a seeded default for backoff-base")
	}

	if err := s.SetConfig(ctx, queuectl.ConfigBackoffBase, "5"); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetConfig(ctx, queuectl.ConfigBackoffBase)
	if err != nil {
		t.Fatal(err)
	}
	if got != "5" {
		t.Fatalf("expected %q, got %q", "5", got)
	}
}

func TestInsertJobFillsDefaultMaxRetries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	j := newJob("a", 0)
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}
	if j.MaxRetries == nil || *j.MaxRetries != queuectl.DefaultMaxRetries {
		t.Fatalf("expected default max retries %d, got %v", queuectl.DefaultMaxRetries, j.MaxRetries)
	}
}

func TestInsertJobPreservesExplicitZeroMaxRetries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	j := newJob("a", 0)
	zero := uint32(0)
	j.MaxRetries = &zero
	if err := s.InsertJob(ctx, j); err != nil {
		t.Fatal(err)
	}
	if j.MaxRetries == nil || *j.MaxRetries != 0 {
		t.Fatalf("expected an explicit max_retries of 0 to survive insert untouched, got %v", j.MaxRetries)
	}

	now := time.Now().UTC()
	if _, err := s.Claim(ctx, "worker-1-0", now); err != nil {
		t.Fatal(err)
	}
	if err := s.Fail(ctx, "a", 1, j.MaxRetries, 2, "boom", now); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.Dead {
		t.Fatalf("expected a job with max_retries=0 to die on its first failure, got %v", got.State)
	}
}

func TestConcurrentClaimsAreExclusive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	const n = 20
	for i := 0; i < n; i++ {
		j := newJob(string(rune('a'+i)), 0)
		if err := s.InsertJob(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	seen := make(map[string]bool)
	results := make(chan *job.Job, n)
	errs := make(chan error, n)

	workers := 8
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func(idx int) {
			for {
				select {
				case <-done:
					return
				default:
				}
				j, err := s.Claim(ctx, string(rune('w'+idx)), now)
				if err != nil {
					errs <- err
					return
				}
				if j == nil {
					return
				}
				results <- j
			}
		}(w)
	}

	claimed := 0
	for claimed < n {
		select {
		case err := <-errs:
			t.Fatal(err)
		case j := <-results:
			if seen[j.ID] {
				t.Fatalf("job %s claimed twice", j.ID)
			}
			seen[j.ID] = true
			claimed++
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for claims, got %d of %d", claimed, n)
		}
	}
	close(done)
}
