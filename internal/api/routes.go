package api

import (
	"net/http"

	"github.com/cleanharbor/cleanharbor/internal/config"
	"github.com/cleanharbor/cleanharbor/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	storage := newStorageHandler(runtime.Storage, runtime.Logger)

	routes.Register(
		mux,
		domain.Jobs.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Codes.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
		storage.routes(),
	)
}
