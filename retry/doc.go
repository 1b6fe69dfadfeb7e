// Package retry implements the pure retry/backoff decision used by
// Store.Fail: given how many attempts a job has accumulated, its
// retry ceiling, the configured backoff base, and the current time,
// decide whether the job dies or gets rescheduled, and when.
//
// Grounded on the teacher's backoff.go (backoffCounter.next), which
// hand-rolls InitialInterval * Multiplier^(attempt-1) with
// math.Pow. That is exactly the sequence
// github.com/cenkalti/backoff/v4's ExponentialBackOff produces when
// configured with a one-second initial interval, Multiplier equal to
// the backoff base, and zero randomization: its k-th NextBackOff call
// returns base^(k-1) seconds. Next wraps that library instead of
// reimplementing the exponent, keeping the teacher's "small pure
// struct exposing a next-shaped method" design.
package retry
