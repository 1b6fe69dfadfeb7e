package retry

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/queuectl/queuectl/job"
)

// Decision is the outcome of applying the retry policy to a failed
// execution: either the job is rescheduled (NextState == job.Failed,
// NextRunAt set) or it is exhausted (NextState == job.Dead).
type Decision struct {
	NextState job.Status
	NextRunAt *time.Time
}

// Next decides the next state for a job whose attempts count is now
// attemptsAfterThisRun (the store's "prior attempts + 1"), given its
// retry ceiling maxRetries, the backoff base, and the current instant.
//
// If attemptsAfterThisRun >= maxRetries, the job dies. Otherwise it is
// rescheduled at now + base^(attemptsAfterThisRun-1) seconds — the
// first retry waits base^0 = 1 second, matching spec.md §4.3 exactly,
// including the documented edge case: with maxRetries == 0 the very
// first failure goes straight to Dead.
func Next(attemptsAfterThisRun uint32, maxRetries uint32, backoffBase int, now time.Time) Decision {
	if attemptsAfterThisRun >= maxRetries {
		return Decision{NextState: job.Dead}
	}
	delay := delayFor(attemptsAfterThisRun, backoffBase)
	next := now.Add(delay)
	return Decision{NextState: job.Failed, NextRunAt: &next}
}

// delayFor returns base^(attempt-1) seconds for attempt >= 1 by
// driving an ExponentialBackOff configured for zero jitter exactly
// attempt times and keeping its final value.
func delayFor(attempt uint32, base int) time.Duration {
	if attempt == 0 {
		attempt = 1
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = float64(base)
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(1<<62 - 1)
	b.MaxElapsedTime = 0
	b.Reset()

	var d time.Duration
	for i := uint32(0); i < attempt; i++ {
		d = b.NextBackOff()
	}
	return d
}
