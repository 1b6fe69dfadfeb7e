package main

import (
	"context"
	"path/filepath"

	"github.com/queuectl/queuectl/bootstrap"
	"github.com/queuectl/queuectl/home"
	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/sqlstore"
)

// openStore resolves the optional ~/.queuectl/queuectl.toml bootstrap
// file and opens the durable store, seeding its config table from that
// file on the very first run. Every subcommand that touches the store
// goes through this one path so bootstrap values and home layout stay
// consistent across the CLI.
func openStore(ctx context.Context) (*sqlstore.Store, error) {
	dir, err := home.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := bootstrap.Load(filepath.Join(dir, "queuectl.toml"))
	if err != nil {
		return nil, err
	}
	return home.OpenWithSeed(ctx, cfg.SeedValues())
}

// defaultWorkerCount reads the bootstrap file's worker_count, falling
// back to 1 if unset or the file is missing.
func defaultWorkerCount() int {
	dir, err := home.Dir()
	if err != nil {
		return 1
	}
	cfg, err := bootstrap.Load(filepath.Join(dir, "queuectl.toml"))
	if err != nil {
		return 1
	}
	return cfg.DefaultWorkerCount(1)
}

// maxRetriesOf renders j.MaxRetries for display. Jobs read back from
// the store always have it filled in by InsertJob, but the field
// itself is a pointer (to distinguish "unset" from an explicit 0), so
// display code guards against a nil rather than assuming that.
func maxRetriesOf(j *job.Job) uint32 {
	if j.MaxRetries == nil {
		return 0
	}
	return *j.MaxRetries
}
