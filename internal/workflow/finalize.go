package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// FinalizeNode returns a state node that folds the classified inventory into
// the terminal Result payload.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		inv, err := extractInventory(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w: %w", ErrFinalizeFailed, err)
		}

		result := Result{
			DocumentMeta: inv.DocumentMeta,
			Rows:         inv.Rows,
			Summary: Summary{
				TotalItems:  inv.TotalItems(),
				ReviewItems: inv.ReviewItems(),
			},
			CompletedAt: time.Now().UTC(),
		}

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"total_items", result.Summary.TotalItems,
			"review_items", result.Summary.ReviewItems,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}
