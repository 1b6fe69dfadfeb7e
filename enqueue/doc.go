// Package enqueue defines the caller-facing request document accepted
// by the enqueue operation, separate from the durable job.Job record
// the store maintains.
//
// Request is intentionally minimal and close to the wire format: it
// carries only what a caller may supply, with JSON tags matching
// spec.md §6's documented enqueue input shape. Converting a Request
// into a job.Job (filling defaults, flattening Tags, parsing RunAt)
// happens once, at insert time, via ToJob.
package enqueue
