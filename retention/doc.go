// Package retention runs a background sweep that permanently deletes
// old terminal jobs (Completed or Dead) from the store.
//
// It is grounded on the teacher's Cleaner/CleanWorker pair, generalized
// from an abstract Cleaner interface to queuectl.Purger, and scheduled
// with the same internal.TimerTask/Lifecycle primitives used elsewhere
// in this module.
package retention
