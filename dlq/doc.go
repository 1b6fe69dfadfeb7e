// Package dlq provides the dead-letter queue administrative API: list
// jobs that have exhausted their retry ceiling and move one back to
// pending.
//
// Grounded on the teacher's thin-wrapper-over-interface pattern
// (Cleaner wraps Store with a narrow, administrative-only surface).
package dlq
