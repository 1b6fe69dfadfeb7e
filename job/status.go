package job

import "fmt"

// Status represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed     (retry scheduled)
//	Failed     -> Processing
//	Processing -> Dead       (retries exhausted)
//	Dead       -> Pending    (operator requeue only)
//
// Unknown is reserved as the zero value and is used only as a filter
// sentinel meaning "no status filter applied"; it must never be the
// State of a persisted Job.
type Status uint8

const (
	// Unknown is the zero value, used only for filtering.
	Unknown Status = iota

	// Pending indicates the job is eligible for claim once NextRunAt and
	// RunAt, if set, have elapsed.
	Pending

	// Processing indicates a worker currently owns the job.
	Processing

	// Completed indicates the job ran successfully. Terminal.
	Completed

	// Failed indicates the most recent attempt errored and a retry has
	// been scheduled at NextRunAt. Eligible for claim again once that
	// time elapses.
	Failed

	// Dead indicates the retry ceiling was reached. Terminal except for
	// an explicit operator requeue.
	Dead
)

func statusToString(s Status) string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

func statusFromString(s string) (Status, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	case "dead":
		return Dead, nil
	case "unknown", "":
		return Unknown, nil
	default:
		return 0, fmt.Errorf("job: unknown status %q", s)
	}
}

// ParseStatus converts a string into a Status. Recognized values are
// "pending", "processing", "completed", "failed", "dead" and the empty
// string or "unknown" (mapped to Unknown).
func ParseStatus(s string) (Status, error) {
	return statusFromString(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(statusToString(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := statusFromString(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// String returns the canonical lowercase name of the status.
func (s Status) String() string {
	return statusToString(s)
}

// Terminal reports whether the status is a terminal state that the
// worker loop never transitions out of on its own (Completed, Dead).
func (s Status) Terminal() bool {
	return s == Completed || s == Dead
}

// Eligible reports whether a job in this status may be claimed at all,
// independent of its timing fields.
func (s Status) Eligible() bool {
	return s == Pending || s == Failed
}

// States enumerates every recognized status in a stable order, used by
// Store.Counts to report zero counts for states with no rows.
func States() []Status {
	return []Status{Pending, Processing, Completed, Failed, Dead}
}
