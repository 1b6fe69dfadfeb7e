package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/queuectl/queuectl/job"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`

	ID      string `bun:"id,pk"`
	Command string `bun:"command,notnull"`

	State      job.Status `bun:"state,notnull,default:1"`
	Attempts   uint32     `bun:"attempts,notnull,default:0"`
	MaxRetries uint32     `bun:"max_retries,notnull,default:0"`
	Priority   int        `bun:"priority,notnull,default:0"`
	Tags       string     `bun:"tags,nullzero"`

	RunAt      *time.Time `bun:"run_at,nullzero"`
	NextRunAt  *time.Time `bun:"next_run_at,nullzero"`
	LockedBy   string     `bun:"locked_by,nullzero"`
	LockedAt   *time.Time `bun:"locked_at,nullzero"`
	Output     string     `bun:"output,nullzero"`
	OutputFile string     `bun:"output_file,nullzero"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (jm *jobModel) toJob() *job.Job {
	maxRetries := jm.MaxRetries
	return &job.Job{
		ID:         jm.ID,
		Command:    jm.Command,
		State:      jm.State,
		Attempts:   jm.Attempts,
		MaxRetries: &maxRetries,
		Priority:   jm.Priority,
		Tags:       jm.Tags,
		RunAt:      jm.RunAt,
		NextRunAt:  jm.NextRunAt,
		LockedBy:   jm.LockedBy,
		LockedAt:   jm.LockedAt,
		Output:     jm.Output,
		OutputFile: jm.OutputFile,
		CreatedAt:  jm.CreatedAt,
		UpdatedAt:  jm.UpdatedAt,
	}
}

func fromJob(j *job.Job, now time.Time) *jobModel {
	state := j.State
	if state == job.Unknown {
		state = job.Pending
	}
	// InsertJob fills j.MaxRetries before calling fromJob, so by this
	// point nil only happens if a caller builds a jobModel bypassing
	// InsertJob's default-filling step entirely.
	var maxRetries uint32
	if j.MaxRetries != nil {
		maxRetries = *j.MaxRetries
	}
	return &jobModel{
		ID:         j.ID,
		Command:    j.Command,
		State:      state,
		Attempts:   j.Attempts,
		MaxRetries: maxRetries,
		Priority:   j.Priority,
		Tags:       j.Tags,
		RunAt:      j.RunAt,
		NextRunAt:  j.NextRunAt,
		OutputFile: j.OutputFile,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

type configModel struct {
	bun.BaseModel `bun:"table:config"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}
