// Package home resolves the on-disk layout under ~/.queuectl/ and
// opens the durable store that lives there.
//
// Grounded on the original Python implementation's _db_path/_logs_dir/
// PID_FILE helpers, and on the teacher's documented "caller owns
// *bun.DB's lifecycle" convention: this package is the one place that
// decides connection settings (WAL, busy_timeout, a single connection)
// for the embedded single-file deployment mode.
package home
