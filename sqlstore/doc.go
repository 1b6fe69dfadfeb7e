// Package sqlstore provides a bun-based SQL implementation of
// queuectl.Store.
//
// Grounded directly on the teacher's sql package: the same backend
// (github.com/uptrace/bun over modernc.org/sqlite via sqlitedialect),
// the same InitDB-creates-table-and-indexes-in-a-transaction shape, and
// the same atomic "UPDATE ... WHERE id IN (subquery) RETURNING" claim
// technique — re-purposed from gqs's visibility-timeout lease model to
// spec.md's simpler "exclusion is entirely a function of state" claim
// protocol.
//
// # Schema
//
// The store expects a "jobs" table corresponding to jobModel and a
// "config" table of key-value pairs. Init creates both (if not
// exists), plus an index on (state, next_run_at, priority, created_at)
// tuned for the claim query's ordering and filter, and an index on
// (state, updated_at) for retention purges. Init is idempotent
// and runs inside a transaction.
//
// # Concurrency model
//
// Claim is implemented as a single atomic UPDATE statement with a
// subquery, so selection and state transition never race against a
// peer worker's claim: at most one UPDATE can win the conditional
// "state is still pending or failed" check. SQLite users should enable
// WAL mode and a busy_timeout (home.Open does this); PostgreSQL and
// other bun dialects are expected to work unmodified given equivalent
// transactional guarantees.
//
// # Database lifecycle
//
// This package does not manage connection pooling or migrations beyond
// Init. The caller (home.Open in this repository) is responsible for
// constructing and configuring *bun.DB.
package sqlstore
