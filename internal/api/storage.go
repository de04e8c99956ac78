package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/cleanharbor/cleanharbor/pkg/handlers"
	"github.com/cleanharbor/cleanharbor/pkg/routes"
	"github.com/cleanharbor/cleanharbor/pkg/storage"
)

// storageHandler exposes raw document retrieval. Failed jobs keep their
// input_ref, so operators can pull the original upload while triaging.
type storageHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newStorageHandler(store storage.System, logger *slog.Logger) *storageHandler {
	return &storageHandler{
		store:  store,
		logger: logger.With("handler", "storage"),
	}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/storage",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download},
			{Method: "GET", Pattern: "/{key...}", Handler: h.find},
		},
	}
}

func (h *storageHandler) find(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	exists, err := h.store.Exists(r.Context(), key)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusInternalServerError, err,
		)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"key":    key,
		"exists": exists,
	})
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			storage.MapHTTPStatus(err), err,
		)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
