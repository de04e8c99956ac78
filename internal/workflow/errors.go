package workflow

import "errors"

// Node-level errors for the inventory pipeline.
var (
	ErrInitFailed     = errors.New("init failed")
	ErrExtractFailed  = errors.New("extract failed")
	ErrClassifyFailed = errors.New("classify failed")
	ErrFinalizeFailed = errors.New("finalize failed")
)
