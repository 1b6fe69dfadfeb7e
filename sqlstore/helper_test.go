package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	"github.com/queuectl/queuectl/sqlstore"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1) // important for sqlite
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	s := sqlstore.New(db)
	if err := s.Init(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	return s
}
