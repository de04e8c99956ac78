package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// InitNode returns a state node that downloads the job's document bytes from
// blob storage and stores them in the workflow state bag.
func InitNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		inputRef, err := extractInputRef(s)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		data, err := downloadDocument(ctx, rt, inputRef)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "init node complete",
			"input_ref", inputRef,
			"bytes", len(data),
		)

		s = s.Set(KeyDocument, data)
		return s, nil
	})
}

func extractInputRef(s state.State) (string, error) {
	val, ok := s.Get(KeyInputRef)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrInitFailed, KeyInputRef)
	}

	inputRef, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not string", ErrInitFailed, KeyInputRef)
	}

	return inputRef, nil
}

func downloadDocument(ctx context.Context, rt *Runtime, inputRef string) ([]byte, error) {
	body, err := rt.Storage.Download(ctx, inputRef)
	if err != nil {
		return nil, fmt.Errorf("%w: download blob: %w", ErrInitFailed, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read blob: %w", ErrInitFailed, err)
	}

	return data, nil
}
