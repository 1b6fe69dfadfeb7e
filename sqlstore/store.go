package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/retry"
)

// Store implements queuectl.Store using a relational backend through
// bun. It is grounded directly on the teacher's sql package (Pusher +
// Puller + Observer), consolidated into the single component spec.md
// §4.1 names.
type Store struct {
	db *bun.DB
}

// New wraps an already-configured *bun.DB. The caller owns the
// database's lifecycle (connection limits, WAL/busy_timeout for
// sqlite); Init must be called once before use.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// InsertJob persists j in Pending state (unless j.State was set
// explicitly). If j.MaxRetries is nil — the caller never supplied
// max_retries — it is filled from the default-max-retries config
// value. An explicit j.MaxRetries of 0 is left untouched: the job
// dies on its very first failure, matching the documented edge case.
// Returns queuectl.ErrDuplicate if j.ID already exists.
func (s *Store) InsertJob(ctx context.Context, j *job.Job) error {
	if j.MaxRetries == nil {
		def, err := s.GetConfig(ctx, queuectl.ConfigDefaultMaxRetries)
		if err != nil {
			return err
		}
		v := queuectl.ParseUintDefault(def, queuectl.DefaultMaxRetries)
		j.MaxRetries = &v
	}
	now := time.Now().UTC()
	model := fromJob(j, now)
	_, err := s.db.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		if isDuplicateErr(err) {
			return queuectl.ErrDuplicate
		}
		return queuectl.NewStoreError("insert_job", err)
	}
	j.CreatedAt = now
	j.UpdatedAt = now
	if j.State == job.Unknown {
		j.State = job.Pending
	}
	return nil
}

// Claim atomically selects the single highest-priority, oldest
// eligible job and transitions it to Processing in one UPDATE ...
// WHERE id IN (subquery) RETURNING statement, so selection and
// transition can never race against a peer worker's claim.
func (s *Store) Claim(ctx context.Context, workerID string, now time.Time) (*job.Job, error) {
	subQuery := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("id").
		Where("(state = ? OR state = ?)", job.Pending, job.Failed).
		Where("(run_at IS NULL OR run_at <= ?)", now).
		Where("(next_run_at IS NULL OR next_run_at <= ?)", now).
		Order("priority DESC", "created_at ASC").
		Limit(1)

	var rows []*jobModel
	err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Processing).
		Set("locked_by = ?", workerID).
		Set("locked_at = ?", now).
		Set("updated_at = ?", now).
		Where("id IN (?)", subQuery).
		Where("(state = ? OR state = ?)", job.Pending, job.Failed).
		Returning("*").
		Scan(ctx, &rows)
	if err != nil {
		// Transient backend contention is reported as "nothing to do";
		// the worker retries on its next tick.
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toJob(), nil
}

// Complete transitions a Processing job to Completed, counting the run
// in Attempts and clearing NextRunAt.
func (s *Store) Complete(ctx context.Context, id string, output string, now time.Time) error {
	_, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Completed).
		Set("attempts = attempts + 1").
		Set("output = ?", output).
		Set("next_run_at = NULL").
		Set("locked_by = ?", "").
		Set("locked_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Processing).
		Exec(ctx)
	if err != nil {
		return queuectl.NewStoreError("complete", err)
	}
	return nil
}

// Fail applies the retry policy and transitions a Processing job to
// either Failed (with NextRunAt scheduled) or Dead.
func (s *Store) Fail(ctx context.Context, id string, newAttempts uint32, maxRetries *uint32, backoffBase int, output string, now time.Time) error {
	limit := uint32(0)
	if maxRetries != nil {
		limit = *maxRetries
	} else {
		def, err := s.GetConfig(ctx, queuectl.ConfigDefaultMaxRetries)
		if err != nil {
			return err
		}
		limit = queuectl.ParseUintDefault(def, queuectl.DefaultMaxRetries)
	}

	decision := retry.Next(newAttempts, limit, backoffBase, now)

	q := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", decision.NextState).
		Set("attempts = ?", newAttempts).
		Set("output = ?", output).
		Set("locked_by = ?", "").
		Set("locked_at = NULL").
		Set("updated_at = ?", now)
	if decision.NextRunAt != nil {
		q = q.Set("next_run_at = ?", *decision.NextRunAt)
	} else {
		q = q.Set("next_run_at = NULL")
	}
	_, err := q.Where("id = ?", id).
		Where("state = ?", job.Processing).
		Exec(ctx)
	if err != nil {
		return queuectl.NewStoreError("fail", err)
	}
	return nil
}

// Get retrieves a job by id, or (nil, nil) if it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	var m jobModel
	err := s.db.NewSelect().Model(&m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, queuectl.NewStoreError("get", err)
	}
	return m.toJob(), nil
}

// List returns jobs ordered by priority desc, created_at asc,
// optionally filtered by status.
func (s *Store) List(ctx context.Context, status job.Status) ([]*job.Job, error) {
	var rows []*jobModel
	q := s.db.NewSelect().Model(&rows).Order("priority DESC", "created_at ASC")
	if status != job.Unknown {
		q = q.Where("state = ?", status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, queuectl.NewStoreError("list", err)
	}
	ret := make([]*job.Job, len(rows))
	for i, r := range rows {
		ret[i] = r.toJob()
	}
	return ret, nil
}

// Counts returns the number of jobs in each state, reporting 0 for
// states with no rows.
func (s *Store) Counts(ctx context.Context) (map[job.Status]int64, error) {
	ret := make(map[job.Status]int64, len(job.States()))
	for _, st := range job.States() {
		ret[st] = 0
	}
	type row struct {
		State job.Status `bun:"state"`
		Count int64      `bun:"count"`
	}
	var rows []row
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("state, count(1) AS count").
		Group("state").
		Scan(ctx, &rows)
	if err != nil {
		return nil, queuectl.NewStoreError("counts", err)
	}
	for _, r := range rows {
		ret[r.State] = r.Count
	}
	return ret, nil
}

// MoveDeadToPending transitions a Dead job back to Pending, resetting
// Attempts to 0 and clearing NextRunAt.
func (s *Store) MoveDeadToPending(ctx context.Context, id string, now time.Time) error {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return queuectl.ErrNotFound
	}
	if cur.State != job.Dead {
		return queuectl.ErrWrongState
	}
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.Pending).
		Set("attempts = ?", 0).
		Set("next_run_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.Dead).
		Exec(ctx)
	if err != nil {
		return queuectl.NewStoreError("move_dead_to_pending", err)
	}
	if !isAffected(res) {
		return queuectl.ErrWrongState
	}
	return nil
}

// GetConfig returns the value for key, or "" if unset.
func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	var m configModel
	err := s.db.NewSelect().Model(&m).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", queuectl.NewStoreError("get_config", err)
	}
	return m.Value, nil
}

// SetConfig inserts or replaces the value for key.
func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.NewInsert().
		Model(&configModel{Key: key, Value: value}).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return queuectl.NewStoreError("set_config", err)
	}
	return nil
}

// Purge deletes terminal jobs, optionally restricted to rows last
// updated at or before before. Non-terminal statuses are rejected so a
// retention sweep can never remove a job a worker still owns.
func (s *Store) Purge(ctx context.Context, status job.Status, before *time.Time) (int64, error) {
	if !status.Terminal() {
		return 0, queuectl.ErrWrongState
	}
	q := s.db.NewDelete().Model((*jobModel)(nil)).Where("state = ?", status)
	if before != nil {
		q = q.Where("updated_at <= ?", *before)
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return 0, queuectl.NewStoreError("purge", err)
	}
	return getAffected(res), nil
}
