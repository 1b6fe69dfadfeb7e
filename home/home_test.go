package home_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/queuectl/queuectl/home"
)

func TestDirCreatesLayout(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	dir, err := home.Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(tmp, ".queuectl") {
		t.Fatalf("unexpected dir: %s", dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to exist as a directory", dir)
	}

	logs, err := home.LogsDir()
	if err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(logs); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to exist as a directory", logs)
	}
}

func TestOpenCreatesAndInitializesStore(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	store, err := home.Open(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	path, err := home.StoreFile()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected store file to exist at %s: %v", path, err)
	}

	// Init is idempotent: calling it again through Open must not error.
	if _, err := home.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = store
}
