// Package job defines the durable, stateful representation of a queued
// shell command.
//
// A Job is the authoritative record maintained by the store. It carries
// both the caller-supplied intent (Command, Priority, Tags, RunAt) and
// the scheduling/attribution metadata the queue itself maintains
// (State, Attempts, LockedBy, LockedAt, NextRunAt, Output).
//
// Job values returned from store operations are snapshots. Mutating a
// returned Job does not affect the underlying record; transitions must
// go through the store.
package job
