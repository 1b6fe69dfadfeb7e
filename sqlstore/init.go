package sqlstore

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/multierr"

	"github.com/queuectl/queuectl"
)

func createJobsTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*jobModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createConfigTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*configModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createClaimIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_claim").
		Column("state", "next_run_at", "priority", "created_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createUpdatedIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*jobModel)(nil)).
		Index("idx_jobs_state_updated").
		Column("state", "updated_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func seedConfig(ctx context.Context, db bun.IDB, values map[string]string) error {
	for k, v := range values {
		_, err := db.NewInsert().
			Model(&configModel{Key: k, Value: v}).
			Ignore().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// Init ensures the jobs table, config table, their indexes, and the
// seed config rows exist. It runs inside a single transaction and is
// idempotent: calling it repeatedly, from any number of processes, is
// safe, since every seed row is written with INSERT OR IGNORE and
// never clobbers a value set by an earlier process or operator.
//
// seed supplies the key-value pairs to seed on an empty config table;
// a nil seed falls back to queuectl.DefaultConfig(). Callers that read
// an optional bootstrap file (see the bootstrap package) pass its
// resolved values here so they take effect on the very first Init a
// host ever runs.
func (s *Store) Init(ctx context.Context, seed map[string]string) error {
	if seed == nil {
		seed = queuectl.DefaultConfig()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return queuectl.NewStoreError("init", err)
	}
	steps := []func(context.Context, bun.IDB) error{
		createJobsTable,
		createConfigTable,
		createClaimIndex,
		createUpdatedIndex,
		func(ctx context.Context, db bun.IDB) error { return seedConfig(ctx, db, seed) },
	}
	for _, step := range steps {
		if err := step(ctx, tx); err != nil {
			return queuectl.NewStoreError("init", multierr.Append(err, tx.Rollback()))
		}
	}
	if err := tx.Commit(); err != nil {
		return queuectl.NewStoreError("init", err)
	}
	return nil
}
