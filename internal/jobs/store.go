package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cleanharbor/cleanharbor/pkg/pagination"
)

// Store is the job persistence contract. The postgres implementation backs
// the service; the in-memory implementation backs concurrency tests.
//
// Acquire performs the compare-and-set created → processing transition. It
// returns the job's current row and whether this caller won the transition;
// callers that lose the race or hit a terminal job get the current view with
// acquired == false and no side effects.
//
// CompleteDone and CompleteError write the terminal state atomically: status,
// payload, and input_ref cleared in a single guarded update. Both require
// the job to be processing and return ErrInvalidTransition otherwise.
type Store interface {
	Insert(ctx context.Context, job *Job) error
	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Job], error)
	Stale(ctx context.Context, olderThan time.Duration) ([]Job, error)

	Acquire(ctx context.Context, id uuid.UUID) (*Job, bool, error)
	Reset(ctx context.Context, id uuid.UUID) (*Job, error)
	CompleteDone(ctx context.Context, id uuid.UUID, result []byte) (*Job, error)
	CompleteError(ctx context.Context, id uuid.UUID, message string) (*Job, error)
}
