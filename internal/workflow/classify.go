package workflow

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/cleanharbor/cleanharbor/internal/classification"
	"github.com/cleanharbor/cleanharbor/internal/inventory"
	"github.com/cleanharbor/cleanharbor/internal/prompts"
)

// ClassifyNode returns a state node that assigns EWC codes to every
// extracted row using bounded errgroup concurrency. The catalog is
// snapshotted once per run so all rows classify against the same code set.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		inv, err := extractInventory(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w: %w", ErrClassifyFailed, err)
		}

		catalog, err := rt.Codes.Snapshot(ctx)
		if err != nil {
			return s, fmt.Errorf("classify: %w: snapshot catalog: %w", ErrClassifyFailed, err)
		}

		instructions := func(ctx context.Context) (string, error) {
			return ComposePrompt(ctx, rt.Prompts, prompts.StageRank)
		}

		oracle := classification.NewOracle(rt.Agent, instructions, rt.Logger)
		engine := classification.NewEngine(catalog, oracle, rt.Engine)

		if err := classifyRows(ctx, rt, engine, inv); err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"rows", len(inv.Rows),
			"review", inv.ReviewItems(),
		)

		s = s.Set(KeyInventory, *inv)
		return s, nil
	})
}

func classifyRows(
	ctx context.Context,
	rt *Runtime,
	engine *classification.Engine,
	inv *inventory.Inventory,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(inv.Rows)))

	for i := range inv.Rows {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			if err := engine.Apply(gctx, &inv.Rows[i]); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrClassifyFailed, err)
	}

	return nil
}

func workerCount(rowCount int) int {
	return max(min(runtime.NumCPU(), rowCount), 1)
}
