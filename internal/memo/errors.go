package memo

import "errors"

// Domain-specific errors for the memo package.
var (
	ErrInvalidCount = errors.New("count must be positive")
)
