package executor_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/queuectl/queuectl/executor"
)

func TestRunSuccess(t *testing.T) {
	e := executor.New()
	res := e.Run(context.Background(), "echo hello", time.Second, "")
	if res.Outcome != executor.Success {
		t.Fatalf("expected Success, got %v", res.Outcome)
	}
	if strings.TrimSpace(res.Output) != "hello" {
		t.Fatalf("expected output %q, got %q", "hello", res.Output)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	e := executor.New()
	res := e.Run(context.Background(), "false", time.Second, "")
	if res.Outcome != executor.NonZeroExit {
		t.Fatalf("expected NonZeroExit, got %v", res.Outcome)
	}
	if res.ExitCode == 0 {
		t.Fatal("expected non-zero exit code")
	}
}

func TestRunTimeout(t *testing.T) {
	e := executor.New()
	res := e.Run(context.Background(), "sleep 2", time.Second, "")
	if res.Outcome != executor.Timeout {
		t.Fatalf("expected Timeout, got %v", res.Outcome)
	}
	if !strings.HasPrefix(res.Output, "Job timed out after 1s") {
		t.Fatalf("expected timeout marker prefix, got %q", res.Output)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	e := &executor.Executor{Shell: "/no/such/shell-binary"}
	res := e.Run(context.Background(), "echo hi", time.Second, "")
	if res.Outcome != executor.SpawnFailure {
		t.Fatalf("expected SpawnFailure, got %v", res.Outcome)
	}
}

func TestRunWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "job-1.log")
	e := executor.New()
	res := e.Run(context.Background(), "echo persisted", time.Second, logPath)
	if res.Outcome != executor.Success {
		t.Fatalf("expected Success, got %v", res.Outcome)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "persisted" {
		t.Fatalf("expected log file to contain %q, got %q", "persisted", data)
	}
}
