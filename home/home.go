package home

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	"github.com/queuectl/queuectl/sqlstore"
)

const dirName = ".queuectl"

// Dir resolves $HOME/.queuectl, creating it if it does not exist.
func Dir() (string, error) {
	h, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: resolve home directory: %w", err)
	}
	dir := filepath.Join(h, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("home: create %s: %w", dir, err)
	}
	return dir, nil
}

// StoreFile is the sqlite database file path.
func StoreFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "queuectl.db"), nil
}

// LogsDir is the directory per-job output logs are written under,
// creating it if it does not exist.
func LogsDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	logs := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logs, 0o755); err != nil {
		return "", fmt.Errorf("home: create %s: %w", logs, err)
	}
	return logs, nil
}

// PIDFile is where the daemonized supervisor records its process id.
func PIDFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pid"), nil
}

// DaemonOutFile is where a daemonized supervisor's stdout is captured.
func DaemonOutFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "daemon.out"), nil
}

// DaemonErrFile is where a daemonized supervisor's stderr is captured.
func DaemonErrFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "daemon.err"), nil
}

// Open opens (creating if necessary) the sqlite-backed store at
// StoreFile, applying the single-connection WAL configuration this
// embedded deployment mode requires, and runs Init with a nil (OS
// hardcoded) config seed. Equivalent to OpenWithSeed(ctx, nil).
func Open(ctx context.Context) (*sqlstore.Store, error) {
	return OpenWithSeed(ctx, nil)
}

// OpenWithSeed is Open, but threads seed through to Init so an
// optional bootstrap file (see the bootstrap package) can populate the
// config table the first time this host ever runs. It has no effect
// on a store that has already been initialized.
func OpenWithSeed(ctx context.Context, seed map[string]string) (*sqlstore.Store, error) {
	path, err := StoreFile()
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("home: open %s: %w", path, err)
	}
	// A single connection serializes this process's own statements.
	// Across worker processes, WAL mode lets reads overlap a writer and
	// the busy_timeout makes a writer wait for a peer's lock instead of
	// failing at once.
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	store := sqlstore.New(db)
	if err := store.Init(ctx, seed); err != nil {
		return nil, err
	}
	return store, nil
}
