package enqueue_test

import (
	"testing"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/enqueue"
	"github.com/queuectl/queuectl/job"
)

func TestParseRejectsMissingID(t *testing.T) {
	_, err := enqueue.Parse([]byte(`{"command":"echo hi"}`))
	if err == nil {
		t.Fatal("expected an error for a missing id")
	}
}

func TestParseRejectsMissingCommand(t *testing.T) {
	_, err := enqueue.Parse([]byte(`{"id":"a"}`))
	if err == nil {
		t.Fatal("expected an error for a missing command")
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := enqueue.Parse([]byte(`{not json`)); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestParseMinimal(t *testing.T) {
	req, err := enqueue.Parse([]byte(`{"id":"a","command":"echo hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.ID != "a" || req.Command != "echo hi" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestToJobDefaults(t *testing.T) {
	req, err := enqueue.Parse([]byte(`{"id":"a","command":"echo hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	j, err := req.ToJob()
	if err != nil {
		t.Fatal(err)
	}
	if j.State != job.Pending {
		t.Fatalf("expected new jobs to default to Pending, got %v", j.State)
	}
	if j.MaxRetries != nil {
		t.Fatalf("expected MaxRetries to be left nil for the store to fill in, got %v", *j.MaxRetries)
	}
}

func TestToJobPreservesExplicitZeroMaxRetries(t *testing.T) {
	req, err := enqueue.Parse([]byte(`{"id":"a","command":"echo hi","max_retries":0}`))
	if err != nil {
		t.Fatal(err)
	}
	j, err := req.ToJob()
	if err != nil {
		t.Fatal(err)
	}
	if j.MaxRetries == nil || *j.MaxRetries != 0 {
		t.Fatalf("expected an explicit max_retries of 0 to survive ToJob, got %v", j.MaxRetries)
	}
}

func TestToJobJoinsTags(t *testing.T) {
	req, err := enqueue.Parse([]byte(`{"id":"a","command":"echo hi","tags":["x","y"]}`))
	if err != nil {
		t.Fatal(err)
	}
	j, err := req.ToJob()
	if err != nil {
		t.Fatal(err)
	}
	if j.Tags != "x,y" {
		t.Fatalf("expected joined tags \"x,y\", got %q", j.Tags)
	}
}

func TestToJobParsesRunAt(t *testing.T) {
	req, err := enqueue.Parse([]byte(`{"id":"a","command":"echo hi","run_at":"2026-01-01T00:00:00Z"}`))
	if err != nil {
		t.Fatal(err)
	}
	j, err := req.ToJob()
	if err != nil {
		t.Fatal(err)
	}
	if j.RunAt == nil {
		t.Fatal("expected RunAt to be set")
	}
}

func TestToJobRejectsMalformedRunAt(t *testing.T) {
	req, err := enqueue.Parse([]byte(`{"id":"a","command":"echo hi","run_at":"not-a-time"}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := req.ToJob(); err == nil {
		t.Fatal("expected a malformed run_at to produce an error")
	}
}

func TestToJobRejectsInvalidState(t *testing.T) {
	req, err := enqueue.Parse([]byte(`{"id":"a","command":"echo hi","state":"bogus"}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := req.ToJob(); err == nil {
		t.Fatal("expected an invalid state to produce an error")
	}
}

func TestParseErrorUnwrapsToMalformedJob(t *testing.T) {
	_, err := enqueue.Parse([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if !isMalformed(err) {
		t.Fatalf("expected err to unwrap to queuectl.ErrMalformedJob, got %v", err)
	}
}

func isMalformed(err error) bool {
	for err != nil {
		if err == queuectl.ErrMalformedJob {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
