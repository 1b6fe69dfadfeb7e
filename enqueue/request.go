package enqueue

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
)

// Request is the structured document a caller submits to enqueue a
// job. Required keys are ID and Command; everything else is optional
// and defaulted by ToJob.
//
// Request carries only values a caller may supply. The optional State,
// Attempts and MaxRetries are copied into the job.Job by ToJob; from
// then on the store alone maintains them.
type Request struct {
	ID         string   `json:"id"`
	Command    string   `json:"command"`
	State      string   `json:"state,omitempty"`
	Attempts   uint32   `json:"attempts,omitempty"`
	MaxRetries *uint32  `json:"max_retries,omitempty"`
	Priority   int      `json:"priority,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	RunAt      string   `json:"run_at,omitempty"`
	OutputFile string   `json:"output_file,omitempty"`
}

// Parse decodes raw JSON into a Request and validates that the
// required id and command fields are present. It returns
// queuectl.ErrMalformedJob, wrapped with the underlying decode error
// when there is one, on any validation failure.
func Parse(raw []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, joinMalformed(err)
	}
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Command) == "" {
		return nil, joinMalformed(nil)
	}
	return &req, nil
}

func joinMalformed(cause error) error {
	if cause == nil {
		return queuectl.ErrMalformedJob
	}
	return &malformedError{cause: cause}
}

type malformedError struct {
	cause error
}

func (e *malformedError) Error() string {
	return queuectl.ErrMalformedJob.Error() + ": " + e.cause.Error()
}

func (e *malformedError) Unwrap() error {
	return queuectl.ErrMalformedJob
}

// ToJob converts the request into a durable job.Job ready for
// Store.InsertJob, flattening Tags into a comma-joined string and
// parsing RunAt as RFC3339 (ISO-8601 UTC). MaxRetries is left nil if
// the caller never supplied it, signaling InsertJob to fill it from
// config; an explicit max_retries of 0 is carried through unchanged so
// the job dies on its very first failure rather than being silently
// upgraded to the default.
//
// ToJob does not set CreatedAt/UpdatedAt; the store assigns those at
// insert time.
func (r *Request) ToJob() (*job.Job, error) {
	j := &job.Job{
		ID:         r.ID,
		Command:    r.Command,
		State:      job.Pending,
		Attempts:   r.Attempts,
		Priority:   r.Priority,
		Tags:       strings.Join(r.Tags, ","),
		OutputFile: r.OutputFile,
	}
	j.MaxRetries = r.MaxRetries
	if r.State != "" {
		st, err := job.ParseStatus(r.State)
		if err != nil {
			return nil, joinMalformed(err)
		}
		j.State = st
	}
	if r.RunAt != "" {
		t, err := time.Parse(time.RFC3339, r.RunAt)
		if err != nil {
			return nil, joinMalformed(err)
		}
		j.RunAt = &t
	}
	return j, nil
}
