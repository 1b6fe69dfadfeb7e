package worker

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/clock"
	"github.com/queuectl/queuectl/executor"
)

// IdleSleep is how long the loop waits between claim attempts when
// nothing was eligible, matching spec.md §4.4.
const IdleSleep = time.Second

// Config bundles everything one worker process needs to run its loop.
type Config struct {
	WorkerID string
	RunID    string
	LogsDir  string

	Store    queuectl.Store
	Executor *executor.Executor
	Clock    clock.Clock
	Log      *slog.Logger
}

// Loop runs one worker process's claim/execute/record cycle until ctx
// is canceled.
type Loop struct {
	cfg Config
	log *slog.Logger
}

// New builds a Loop from cfg, attaching run_id to every log record the
// loop emits for correlation across this worker process's lifetime.
func New(cfg Config) *Loop {
	log := cfg.Log
	if cfg.RunID != "" {
		log = log.With("run_id", cfg.RunID)
	}
	return &Loop{cfg: cfg, log: log.With("worker_id", cfg.WorkerID)}
}

// Run claims and executes jobs one at a time until ctx is canceled.
// Between jobs, and while idle, it observes ctx for shutdown.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.log.Info("worker loop stopping")
			return
		default:
		}

		now := l.cfg.Clock.Now()
		j, err := l.cfg.Store.Claim(ctx, l.cfg.WorkerID, now)
		if err != nil {
			l.log.Error("claim failed", "err", err)
			l.sleep(ctx, IdleSleep)
			continue
		}
		if j == nil {
			l.sleep(ctx, IdleSleep)
			continue
		}

		l.log.Info("claimed job", "id", j.ID, "attempt", j.Attempts+1)

		// A claimed job runs to the end (or its timeout) and its outcome
		// is recorded even if shutdown begins meanwhile.
		jobCtx := context.WithoutCancel(ctx)
		timeout := l.jobTimeout(jobCtx)
		logPath := ""
		if l.cfg.LogsDir != "" {
			logPath = filepath.Join(l.cfg.LogsDir, j.ID+".log")
		}

		result := l.cfg.Executor.Run(jobCtx, j.Command, timeout, logPath)
		now = l.cfg.Clock.Now()

		if result.Outcome == executor.Success {
			if err := l.cfg.Store.Complete(jobCtx, j.ID, result.Output, now); err != nil {
				l.log.Error("cannot complete job", "id", j.ID, "err", err)
			}
			l.log.Info("job completed", "id", j.ID, "elapsed", result.Elapsed)
			continue
		}

		l.log.Warn("job execution failed", "id", j.ID, "outcome", result.Outcome, "exit_code", result.ExitCode)
		newAttempts := j.Attempts + 1
		backoffBase := l.backoffBase(jobCtx)
		if err := l.cfg.Store.Fail(jobCtx, j.ID, newAttempts, j.MaxRetries, backoffBase, result.Output, now); err != nil {
			l.log.Error("cannot record failure", "id", j.ID, "err", err)
		}
	}
}

func (l *Loop) jobTimeout(ctx context.Context) time.Duration {
	v, err := l.cfg.Store.GetConfig(ctx, queuectl.ConfigJobTimeout)
	if err != nil {
		l.log.Error("job-timeout config read failed, using default", "err", err)
		return queuectl.DefaultJobTimeoutSeconds * time.Second
	}
	seconds := queuectl.ParseIntDefault(v, queuectl.DefaultJobTimeoutSeconds)
	return time.Duration(seconds) * time.Second
}

func (l *Loop) backoffBase(ctx context.Context) int {
	v, err := l.cfg.Store.GetConfig(ctx, queuectl.ConfigBackoffBase)
	if err != nil {
		l.log.Error("backoff-base config read failed, using default", "err", err)
		return queuectl.DefaultBackoffBase
	}
	return queuectl.ParseIntDefault(v, queuectl.DefaultBackoffBase)
}

func (l *Loop) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
