package habit

import "errors"

var (
	// ErrInvalidInput indicates invalid habit input.
	ErrInvalidInput = errors.New("invalid habit input")
)
