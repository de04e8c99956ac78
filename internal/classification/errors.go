package classification

import "errors"

// ErrRankFailed wraps oracle failures: the ranking call could not complete
// or its response could not be parsed.
var ErrRankFailed = errors.New("ranking oracle failed")
