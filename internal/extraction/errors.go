package extraction

import "errors"

// Domain errors for the extraction pipeline stage.
var (
	// ErrUnreadable marks documents whose text layer cannot be recovered.
	ErrUnreadable = errors.New("document text could not be recovered")
	// ErrExtractFailed wraps model-call or response-parse failures.
	ErrExtractFailed = errors.New("extraction call failed")
)
