package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cleanharbor/cleanharbor/pkg/pagination"
	"github.com/cleanharbor/cleanharbor/pkg/query"
	"github.com/cleanharbor/cleanharbor/pkg/repository"
)

const jobColumns = "id, status, filename, model, input_ref, page_count, result, error, created_at, updated_at"

type pgStore struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// NewStore creates the postgres-backed job store.
func NewStore(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) Store {
	return &pgStore{
		db:         db,
		logger:     logger.With("system", "jobs_store"),
		pagination: pagination,
	}
}

func (s *pgStore) Insert(ctx context.Context, job *Job) error {
	q := fmt.Sprintf(`
		INSERT INTO jobs(id, status, filename, model, input_ref, page_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, jobColumns)

	args := []any{job.ID, job.Status, job.Filename, job.Model, job.InputRef, job.PageCount}

	inserted, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Job, error) {
		return repository.QueryOne(ctx, tx, q, args, scanJob)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrInvalidTransition)
	}

	*job = inserted
	return nil
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	j, err := repository.QueryOne(ctx, s.db, q, args, scanJob)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidTransition)
	}
	return &j, nil
}

func (s *pgStore) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Job], error) {
	page.Normalize(s.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "Model")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	jobs, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanJob)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	result := pagination.NewPageResult(jobs, total, page.Page, page.PageSize)
	return &result, nil
}

func (s *pgStore) Stale(ctx context.Context, olderThan time.Duration) ([]Job, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at`, jobColumns)

	cutoff := time.Now().UTC().Add(-olderThan)

	jobs, err := repository.QueryMany(ctx, s.db, q, []any{StatusProcessing, cutoff}, scanJob)
	if err != nil {
		return nil, fmt.Errorf("query stale jobs: %w", err)
	}
	return jobs, nil
}

func (s *pgStore) Acquire(ctx context.Context, id uuid.UUID) (*Job, bool, error) {
	q := fmt.Sprintf(`
		UPDATE jobs SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING %s`, jobColumns)

	j, err := repository.QueryOne(ctx, s.db, q, []any{id, StatusProcessing, StatusCreated}, scanJob)
	if err == nil {
		return &j, true, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("acquire job: %w", err)
	}

	// The guarded update matched nothing: the job is missing, already
	// terminal, or another caller won the transition. Return the current
	// view without side effects.
	current, err := s.Find(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (s *pgStore) Reset(ctx context.Context, id uuid.UUID) (*Job, error) {
	q := fmt.Sprintf(`
		UPDATE jobs SET status = $2, error = NULL, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING %s`, jobColumns)

	j, err := repository.QueryOne(ctx, s.db, q, []any{id, StatusCreated, StatusError}, scanJob)
	if err == nil {
		s.logger.Info("job reset", "id", id)
		return &j, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reset job: %w", err)
	}

	if _, err := s.Find(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrInvalidTransition
}

func (s *pgStore) CompleteDone(ctx context.Context, id uuid.UUID, result []byte) (*Job, error) {
	q := fmt.Sprintf(`
		UPDATE jobs
		SET status = $2, result = $3, error = NULL, input_ref = NULL, updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING %s`, jobColumns)

	return s.complete(ctx, q, []any{id, StatusDone, result, StatusProcessing})
}

func (s *pgStore) CompleteError(ctx context.Context, id uuid.UUID, message string) (*Job, error) {
	// input_ref survives the error state so a reset job can retry against
	// the original document.
	q := fmt.Sprintf(`
		UPDATE jobs
		SET status = $2, error = $3, result = NULL, updated_at = now()
		WHERE id = $1 AND status = $4
		RETURNING %s`, jobColumns)

	return s.complete(ctx, q, []any{id, StatusError, message, StatusProcessing})
}

func (s *pgStore) complete(ctx context.Context, q string, args []any) (*Job, error) {
	j, err := repository.QueryOne(ctx, s.db, q, args, scanJob)
	if err == nil {
		return &j, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("complete job: %w", err)
	}

	if _, err := s.Find(ctx, args[0].(uuid.UUID)); err != nil {
		return nil, err
	}
	return nil, ErrInvalidTransition
}
