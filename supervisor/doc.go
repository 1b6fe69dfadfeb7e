// Package supervisor launches and joins a fixed number of worker
// processes, propagating shutdown signals to all of them.
//
// Grounded on the teacher's internal.WorkerPool/TimerTask/DoneChan
// shutdown-broadcast idiom, adapted from in-process goroutines to
// independent OS processes: the blast radius of one stuck shell
// command must never be able to stall its siblings, so each worker in
// this design is its own process rather than a pooled goroutine.
package supervisor
