package ewc

import (
	"context"

	"github.com/cleanharbor/cleanharbor/pkg/pagination"
)

// System defines the public contract for catalog operations.
// The catalog is read-only to this service; seeding happens via migrations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Code], error)

	Find(ctx context.Context, code string) (*Code, error)

	// Snapshot loads the full catalog for use by the classification engine.
	// Returns ErrEmptyCatalog when the code table holds no rows.
	Snapshot(ctx context.Context) (*Catalog, error)
}
