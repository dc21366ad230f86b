package day

import "errors"

var (
	// ErrInvalidDate indicates a malformed calendar day.
	ErrInvalidDate = errors.New("invalid calendar day")
	// ErrInvalidMood indicates a mood outside the known scale.
	ErrInvalidMood = errors.New("invalid mood")
	// ErrInvalidPlanItem indicates a plan item without text.
	ErrInvalidPlanItem = errors.New("invalid plan item")
	// ErrPlanFull indicates the day's plan already holds the maximum items.
	ErrPlanFull = errors.New("plan is full")
	// ErrPlanItemNotFound indicates no plan item has the given id.
	ErrPlanItemNotFound = errors.New("plan item not found")
)
