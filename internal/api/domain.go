package api

import (
	"context"

	"github.com/cleanharbor/cleanharbor/internal/ewc"
	"github.com/cleanharbor/cleanharbor/internal/jobs"
	"github.com/cleanharbor/cleanharbor/internal/prompts"
	"github.com/cleanharbor/cleanharbor/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Codes   ewc.System
	Jobs    jobs.System
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime. The jobs system
// runs uploads through the workflow pipeline, which draws its catalog and
// prompt instructions from the codes and prompts systems.
func NewDomain(runtime *Runtime) *Domain {
	codesSystem := ewc.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	pipeline := &workflow.Runtime{
		Agent:   runtime.Agent,
		Storage: runtime.Storage,
		Codes:   codesSystem,
		Prompts: promptsSystem,
		Engine:  runtime.Engine,
		Logger:  runtime.Logger,
	}

	jobsSystem := jobs.New(
		jobs.NewStore(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
		runtime.Storage,
		func(ctx context.Context, inputRef, model string) (*workflow.Result, error) {
			return workflow.Execute(ctx, pipeline, inputRef, model)
		},
		runtime.Logger,
		runtime.Pagination,
		runtime.StaleAfter,
	)

	return &Domain{
		Codes:   codesSystem,
		Jobs:    jobsSystem,
		Prompts: promptsSystem,
	}
}
