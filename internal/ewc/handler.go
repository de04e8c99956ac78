package ewc

import (
	"log/slog"
	"net/http"

	"github.com/cleanharbor/cleanharbor/pkg/handlers"
	"github.com/cleanharbor/cleanharbor/pkg/pagination"
	"github.com/cleanharbor/cleanharbor/pkg/routes"
)

// Handler provides HTTP endpoints for catalog lookups.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "ewc"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for catalog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/codes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{code}", Handler: h.Find},
		},
	}
}

// List returns a paginated list of catalog codes with optional query filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single catalog entry by its 6-digit code.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	code, err := h.sys.Find(r.Context(), r.PathValue("code"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, code)
}
