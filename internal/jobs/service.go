package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cleanharbor/cleanharbor/internal/workflow"
	"github.com/cleanharbor/cleanharbor/pkg/pagination"
	"github.com/cleanharbor/cleanharbor/pkg/storage"
)

var pdfMagic = []byte("%PDF")

// Runner executes the inventory pipeline for a stored document using the
// model selected at upload time. Production wires workflow.Execute; tests
// substitute fakes.
type Runner func(ctx context.Context, inputRef, model string) (*workflow.Result, error)

type service struct {
	store      Store
	storage    storage.System
	run        Runner
	logger     *slog.Logger
	pagination pagination.Config
	staleAfter time.Duration
}

// New creates the job orchestration service implementing the System interface.
func New(
	store Store,
	blobs storage.System,
	run Runner,
	logger *slog.Logger,
	pagination pagination.Config,
	staleAfter time.Duration,
) System {
	return &service{
		store:      store,
		storage:    blobs,
		run:        run,
		logger:     logger.With("system", "jobs"),
		pagination: pagination,
		staleAfter: staleAfter,
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, s.pagination, maxUploadSize)
}

// Create validates the upload, stores the document bytes under a
// content-addressed key, and registers the job. The blob upload precedes the
// insert; a failed insert triggers a compensating blob delete.
func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Job, error) {
	if len(cmd.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if !bytes.HasPrefix(cmd.Data, pdfMagic) {
		return nil, ErrInvalidFile
	}

	key := storage.ContentKey(cmd.Data)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), "application/pdf"); err != nil {
		return nil, fmt.Errorf("upload document blob: %w", err)
	}

	job := &Job{
		ID:        uuid.New(),
		Status:    StatusCreated,
		Filename:  cmd.Filename,
		Model:     cmd.Model,
		InputRef:  &key,
		PageCount: cmd.PageCount,
	}

	if err := s.store.Insert(ctx, job); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("job created", "id", job.ID, "filename", job.Filename, "input_ref", key)
	return job, nil
}

// Process runs the pipeline for a created job. The created → processing
// transition is a compare-and-set: losers of a concurrent race and callers
// hitting a terminal job get the current row back with nothing written.
func (s *service) Process(ctx context.Context, id uuid.UUID) (*Job, error) {
	job, acquired, err := s.store.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}

	if !acquired {
		s.logger.Info("process skipped", "id", id, "status", job.Status)
		return job, nil
	}

	if job.InputRef == nil {
		return s.fail(ctx, id, ErrInputUnavailable.Error())
	}
	inputRef := *job.InputRef

	result, err := s.run(ctx, inputRef, job.Model)
	if err != nil {
		s.logger.Warn("pipeline failed", "id", id, "error", err)
		return s.fail(ctx, id, err.Error())
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return s.fail(ctx, id, fmt.Sprintf("encode result: %v", err))
	}

	done, err := s.store.CompleteDone(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.deleteBlob(ctx, inputRef)
	s.logger.Info("job done", "id", id, "rows", len(result.Rows))
	return done, nil
}

// fail writes the terminal error state. Pipeline errors are absorbed here;
// only store failures propagate to the caller. The input blob is retained so
// a reset job can retry against the original document.
func (s *service) fail(ctx context.Context, id uuid.UUID, message string) (*Job, error) {
	job, err := s.store.CompleteError(ctx, id, message)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *service) deleteBlob(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("input blob delete failed", "key", key, "error", err)
	}
}

// Reset returns a failed job to created so Process can retry it.
func (s *service) Reset(ctx context.Context, id uuid.UUID) (*Job, error) {
	job, err := s.store.Reset(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job reset", "id", id)
	return job, nil
}

func (s *service) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	return s.store.Find(ctx, id)
}

func (s *service) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Job], error) {
	return s.store.List(ctx, page, filters)
}

// Stale returns processing jobs older than the configured maximum age,
// flagging runs that died without reaching a terminal state.
func (s *service) Stale(ctx context.Context) ([]Job, error) {
	return s.store.Stale(ctx, s.staleAfter)
}
