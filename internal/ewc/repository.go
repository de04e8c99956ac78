package ewc

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cleanharbor/cleanharbor/pkg/pagination"
	"github.com/cleanharbor/cleanharbor/pkg/query"
	"github.com/cleanharbor/cleanharbor/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a catalog repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "ewc"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Code], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Description", "Subchapter")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count ewc codes: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	codes, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCode)
	if err != nil {
		return nil, fmt.Errorf("query ewc codes: %w", err)
	}

	result := pagination.NewPageResult(codes, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, code string) (*Code, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Code", code)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCode)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &c, nil
}

func (r *repo) Snapshot(ctx context.Context) (*Catalog, error) {
	q, args := query.NewBuilder(projection).OrderByFields(catalogSort).Build()

	codes, err := repository.QueryMany(ctx, r.db, q, args, scanCode)
	if err != nil {
		return nil, fmt.Errorf("load ewc catalog: %w", err)
	}

	if len(codes) == 0 {
		return nil, ErrEmptyCatalog
	}

	return NewCatalog(codes), nil
}
