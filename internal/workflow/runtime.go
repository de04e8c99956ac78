package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cleanharbor/cleanharbor/internal/classification"
	"github.com/cleanharbor/cleanharbor/internal/ewc"
	"github.com/cleanharbor/cleanharbor/internal/prompts"
	"github.com/cleanharbor/cleanharbor/pkg/storage"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Agent   gaconfig.AgentConfig
	Storage storage.System
	Codes   ewc.System
	Prompts prompts.System
	Engine  classification.Config
	Logger  *slog.Logger
}

// WithModel returns a Runtime whose agent config targets the given model,
// leaving the receiver untouched. An empty model keeps the configured
// default, so jobs uploaded without a selector run unchanged.
func (rt *Runtime) WithModel(model string) *Runtime {
	if model == "" {
		return rt
	}

	run := *rt

	modelCfg := gaconfig.ModelConfig{}
	if rt.Agent.Model != nil {
		modelCfg = *rt.Agent.Model
	}
	modelCfg.Name = model
	run.Agent.Model = &modelCfg

	return &run
}
