package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/cleanharbor/cleanharbor/pkg/pagination"
)

// System defines the public contract for job orchestration.
//
// Process is idempotent: it performs the guarded created → processing
// transition, runs the pipeline, and writes the terminal state atomically.
// Callers that hit a terminal or already-processing job receive the current
// view with no side effects. Pipeline failures are absorbed into the job's
// error state; only persistence failures surface as errors.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Job, error)
	Process(ctx context.Context, id uuid.UUID) (*Job, error)
	Reset(ctx context.Context, id uuid.UUID) (*Job, error)
	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Job], error)
	Stale(ctx context.Context) ([]Job, error)
}
