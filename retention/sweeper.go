package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/internal"
	"github.com/queuectl/queuectl/job"
)

// Default schedule for the sweepers the CLI starts alongside the
// worker pool: completed jobs are kept for a day (operators generally
// only need recent success history), dead jobs for a week (long
// enough to investigate before an operator requeues or gives up on
// them), both checked hourly.
const (
	DefaultInterval     = time.Hour
	DefaultCompletedAge = 24 * time.Hour
	DefaultDeadAge      = 7 * 24 * time.Hour
)

// Config controls one sweep target: a terminal status and an age
// threshold. A zero Age purges every job in Status regardless of age.
type Config struct {
	Status   job.Status
	Interval time.Duration
	Age      time.Duration
}

// Sweeper periodically purges terminal jobs older than Age via a
// queuectl.Purger. It does not participate in job processing and never
// touches Pending or Processing rows.
//
// Sweeper has a strict lifecycle (internal.Lifecycle): Start may only
// be called once, and Stop waits for the in-flight sweep to finish or
// the timeout to expire.
type Sweeper struct {
	lc       internal.Lifecycle
	task     internal.TimerTask
	purger   queuectl.Purger
	log      *slog.Logger
	status   job.Status
	interval time.Duration
	age      time.Duration
}

// New creates a Sweeper that purges cfg.Status jobs older than cfg.Age
// every cfg.Interval, using purger as the backing store.
func New(purger queuectl.Purger, cfg Config, log *slog.Logger) *Sweeper {
	return &Sweeper{
		purger:   purger,
		log:      log,
		status:   cfg.Status,
		interval: cfg.Interval,
		age:      cfg.Age,
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	var before *time.Time
	if s.age > 0 {
		t := time.Now().UTC().Add(-s.age)
		before = &t
	}
	n, err := s.purger.Purge(ctx, s.status, before)
	if err != nil {
		s.log.Error("retention sweep failed", "status", s.status, "err", err)
		return
	}
	if n > 0 {
		s.log.Info("purged terminal jobs", "status", s.status, "count", n)
	}
}

// Start begins periodic sweeping. It returns internal.ErrDoubleStarted
// if the sweeper has already been started.
func (s *Sweeper) Start(ctx context.Context) error {
	if err := s.lc.TryStart(); err != nil {
		return err
	}
	s.task.Start(ctx, s.sweep, s.interval)
	return nil
}

// Stop terminates the background sweep, waiting up to timeout for the
// in-flight sweep to finish.
func (s *Sweeper) Stop(timeout time.Duration) error {
	return s.lc.TryStop(timeout, s.task.Stop)
}
