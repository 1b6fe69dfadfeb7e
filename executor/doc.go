// Package executor runs exactly one claimed job as an external shell
// process, under a wall-clock timeout, and captures its combined
// output.
//
// Executor has no teacher precedent — the teacher's gqs.Worker invokes
// an in-process Go handler and never spawns a process — so this
// package is grounded on the original Python implementation's
// worker.py (subprocess.run(cmd, shell=True, capture_output=True,
// timeout=...)) expressed in the teacher's idiom: a small struct with
// one method returning a typed Result, logged through log/slog the way
// gqs.Worker logs its own transitions.
//
// Executor is pure with respect to the store: it never reads or
// writes job rows. The worker package is responsible for mapping a
// Result onto Store.Complete or Store.Fail.
package executor
