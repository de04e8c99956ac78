package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/cleanharbor/cleanharbor/internal/extraction"
	"github.com/cleanharbor/cleanharbor/internal/inventory"
	"github.com/cleanharbor/cleanharbor/internal/prompts"
)

// ExtractNode returns a state node that runs the extraction collaborator
// over the downloaded document bytes and stores the resulting inventory in
// the workflow state bag.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		data, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		instructions := func(ctx context.Context) (string, error) {
			return ComposePrompt(ctx, rt.Prompts, prompts.StageExtract)
		}

		collaborator := extraction.New(rt.Agent, instructions, rt.Logger)

		inv, err := collaborator.Extract(ctx, data)
		if err != nil {
			return s, fmt.Errorf("extract: %w: %w", ErrExtractFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"pages", inv.DocumentMeta.PagesTotal,
			"rows", len(inv.Rows),
		)

		s = s.Set(KeyInventory, *inv)
		return s, nil
	})
}

func extractDocument(s state.State) ([]byte, error) {
	val, ok := s.Get(KeyDocument)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrExtractFailed, KeyDocument)
	}

	data, ok := val.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []byte", ErrExtractFailed, KeyDocument)
	}

	return data, nil
}

func extractInventory(s state.State) (*inventory.Inventory, error) {
	val, ok := s.Get(KeyInventory)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyInventory)
	}

	inv, ok := val.(inventory.Inventory)
	if !ok {
		return nil, fmt.Errorf("%s is not Inventory", KeyInventory)
	}

	return &inv, nil
}
