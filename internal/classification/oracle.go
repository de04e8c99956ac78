package classification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cleanharbor/cleanharbor/internal/ewc"
	"github.com/cleanharbor/cleanharbor/internal/inventory"
	"github.com/cleanharbor/cleanharbor/pkg/formatting"
)

// Oracle ranks catalog entries against an inventory row. The engine treats
// its output as advisory: candidates are validated against the chapter pool
// and re-ordered deterministically before selection.
type Oracle interface {
	Rank(ctx context.Context, row inventory.Row, pool []ewc.Code) ([]Candidate, error)
}

// InstructionSource supplies the ranking instructions placed ahead of the
// catalog block, letting callers compose prompt overrides without this
// package depending on the prompt store.
type InstructionSource func(ctx context.Context) (string, error)

type rankResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type agentOracle struct {
	agent        gaconfig.AgentConfig
	instructions InstructionSource
	logger       *slog.Logger
}

// NewOracle creates the production Oracle backed by a chat agent.
func NewOracle(cfg gaconfig.AgentConfig, instructions InstructionSource, logger *slog.Logger) Oracle {
	return &agentOracle{
		agent:        cfg,
		instructions: instructions,
		logger:       logger.With("system", "oracle"),
	}
}

func (o *agentOracle) Rank(ctx context.Context, row inventory.Row, pool []ewc.Code) ([]Candidate, error) {
	instructions, err := o.instructions(ctx)
	if err != nil {
		return nil, fmt.Errorf("compose instructions: %w", err)
	}

	a, err := agent.New(&o.agent)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	prompt := buildRankPrompt(instructions, row, pool)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("chat call: %w", err)
	}

	parsed, err := formatting.Parse[rankResponse](resp.Text())
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	o.logger.DebugContext(
		ctx, "row ranked",
		"material", row.Material,
		"pool_size", len(pool),
		"candidates", len(parsed.Candidates),
	)

	return parsed.Candidates, nil
}

func buildRankPrompt(instructions string, row inventory.Row, pool []ewc.Code) string {
	var b strings.Builder

	b.WriteString(instructions)
	b.WriteString("\n\nCATALOG ENTRIES (code | entry type | priority | description):\n")

	for _, code := range pool {
		priority := ""
		if code.Priority {
			priority = "PRIORITY"
		}
		fmt.Fprintf(&b, "%s | %s | %s | %s\n", code.Code, code.EntryType, priority, code.Description)
	}

	b.WriteString("\nINVENTORY ROW:\n")
	fmt.Fprintf(&b, "material: %s\n", row.Material)
	if row.ItemName != "" {
		fmt.Fprintf(&b, "item name: %s\n", row.ItemName)
	}
	if row.Location != "" {
		fmt.Fprintf(&b, "location: %s\n", row.Location)
	}
	if len(row.HazardFlags) > 0 {
		fmt.Fprintf(&b, "hazard flags: %s\n", strings.Join(row.HazardFlags, ", "))
	}
	if row.Remarks != "" {
		fmt.Fprintf(&b, "remarks: %s\n", row.Remarks)
	}
	if row.SourceText != "" {
		fmt.Fprintf(&b, "source text: %s\n", row.SourceText)
	}

	return b.String()
}
