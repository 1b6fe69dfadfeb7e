// Package worker implements the single-job-at-a-time loop that runs
// inside one worker process: claim, execute, record outcome, idle.
//
// Grounded on the teacher's Worker.pull/handle split, collapsed to
// synchronous single-job handling since this module puts concurrency
// between OS processes rather than inside one (see the supervisor
// package), not inside a goroutine pool.
package worker
