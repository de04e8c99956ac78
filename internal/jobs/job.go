// Package jobs implements the asynchronous job orchestrator. A job tracks
// one uploaded IHM document through the created → processing → {done, error}
// lifecycle, with idempotent processing and an explicit error → created
// reset path for retries.
package jobs

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Status is the job lifecycle state.
type Status string

// Job lifecycle states.
const (
	StatusCreated    Status = "created"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

var statuses = []Status{
	StatusCreated,
	StatusProcessing,
	StatusDone,
	StatusError,
}

// Statuses returns the list of valid job statuses.
func Statuses() []Status {
	return statuses
}

// ParseStatus validates a string as a known job status.
// Returns ErrInvalidStatus if the value is not recognized.
func ParseStatus(s string) (Status, error) {
	v := Status(s)
	if !slices.Contains(statuses, v) {
		return "", ErrInvalidStatus
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known status value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Terminal reports whether the status is a terminal lifecycle state.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// CanTransition reports whether a transition to the target status is legal.
// The lifecycle is monotonic except for the explicit error → created reset.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusCreated:
		return to == StatusProcessing
	case StatusProcessing:
		return to == StatusDone || to == StatusError
	case StatusError:
		return to == StatusCreated
	default:
		return false
	}
}

// Job is one document-processing request. InputRef is the content-addressed
// storage key of the uploaded document; it is cleared once the job completes
// successfully, while failed jobs keep it so a reset can retry. Exactly one
// of Result and Error is set on terminal jobs.
type Job struct {
	ID        uuid.UUID       `json:"id"`
	Status    Status          `json:"status"`
	Filename  string          `json:"filename"`
	Model     string          `json:"model"`
	InputRef  *string         `json:"input_ref,omitempty"`
	PageCount *int            `json:"page_count,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *string         `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new job.
type CreateCommand struct {
	Data      []byte
	Filename  string
	Model     string
	PageCount *int
}
