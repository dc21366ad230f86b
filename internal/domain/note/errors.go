package note

import "errors"

var (
	// ErrInvalidInput indicates invalid note input.
	ErrInvalidInput = errors.New("invalid note input")
	// ErrDuplicateDailyNote indicates a daily note already exists for the date.
	ErrDuplicateDailyNote = errors.New("daily note already exists for date")
)
