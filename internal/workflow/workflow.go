// Package workflow implements the inventory pipeline as a state graph:
// init (download) → extract → classify → finalize. Documents that yield no
// rows skip classification and finalize directly.
package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/cleanharbor/cleanharbor/internal/inventory"
)

// Execute runs the inventory pipeline for a single stored document and
// returns the terminal Result. A non-empty model overrides the configured
// agent model for this run only.
func Execute(ctx context.Context, rt *Runtime, inputRef, model string) (*Result, error) {
	graph, err := buildGraph(rt.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyInputRef, inputRef)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("cleanharbor-inventory")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("init", InitNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// init → extract (unconditional)
	if err := graph.AddEdge("init", "extract", nil); err != nil {
		return nil, err
	}

	// extract → classify (when rows were found)
	if err := graph.AddEdge("extract", "classify", hasRows); err != nil {
		return nil, err
	}

	// extract → finalize (empty documents skip classification)
	if err := graph.AddEdge("extract", "finalize", state.Not(hasRows)); err != nil {
		return nil, err
	}

	// classify → finalize (unconditional)
	if err := graph.AddEdge("classify", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("init"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := val.(Result)
	if !ok {
		return nil, fmt.Errorf("%s is not Result", KeyResult)
	}

	return &result, nil
}

func hasRows(s state.State) bool {
	val, ok := s.Get(KeyInventory)
	if !ok {
		return false
	}

	inv, ok := val.(inventory.Inventory)
	if !ok {
		return false
	}

	return len(inv.Rows) > 0
}
