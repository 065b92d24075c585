package network

import "errors"

// Model file errors. Load wraps these with positional context, so callers
// should test with errors.Is.
var (
	ErrInvalidActivation = errors.New("invalid activation tag")
	ErrInvalidShape      = errors.New("invalid layer shape")
	ErrTruncatedModel    = errors.New("model file truncated")
)
