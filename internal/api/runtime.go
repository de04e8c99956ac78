package api

import (
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cleanharbor/cleanharbor/internal/classification"
	"github.com/cleanharbor/cleanharbor/internal/config"
	"github.com/cleanharbor/cleanharbor/internal/infrastructure"
	"github.com/cleanharbor/cleanharbor/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Engine     classification.Config
	Pagination pagination.Config
	StaleAfter time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agent:      cfg.Agent.Build(),
		Engine:     cfg.Engine,
		Pagination: cfg.API.Pagination,
		StaleAfter: cfg.API.StaleAfterDuration(),
	}
}
