package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/daycontext"
	"github.com/rpggio/personalos/internal/domain/habit"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/domain/timesession"
	"github.com/rpggio/personalos/internal/repository"
)

// ErrNotFound indicates a tool addressed an entity that does not exist.
var ErrNotFound = errors.New("not found")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain and store errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the id; list the collection to find it"}
	case errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, habit.ErrInvalidInput),
		errors.Is(err, note.ErrInvalidInput),
		errors.Is(err, timesession.ErrInvalidInput),
		errors.Is(err, day.ErrInvalidDate),
		errors.Is(err, day.ErrInvalidPlanItem),
		errors.Is(err, daycontext.ErrInvalidDate):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Dates are YYYY-MM-DD; check required fields and enum values"}
	case errors.Is(err, day.ErrInvalidMood):
		return &APIError{Code: "INVALID_MOOD", Message: err.Error(), RecoveryHint: "Use one of great, good, neutral, bad, awful"}
	case errors.Is(err, day.ErrPlanFull):
		return &APIError{Code: "PLAN_FULL", Message: err.Error(), RecoveryHint: "Remove or complete a plan item first"}
	case errors.Is(err, day.ErrPlanItemNotFound):
		return &APIError{Code: "PLAN_ITEM_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call ensure_day to read current plan item ids"}
	case errors.Is(err, note.ErrDuplicateDailyNote):
		return &APIError{Code: "DUPLICATE_DAILY_NOTE", Message: err.Error(), RecoveryHint: "Fetch it with get_daily_note and update it instead"}
	case errors.Is(err, repository.ErrMissingID):
		return &APIError{Code: "MISSING_ID", Message: err.Error(), RecoveryHint: "Pass the id of a stored entity"}
	case errors.Is(err, repository.ErrConstraintViolation):
		return &APIError{Code: "CONSTRAINT_VIOLATION", Message: err.Error(), RecoveryHint: "Retry; the entity was created concurrently"}
	case errors.Is(err, repository.ErrTransactionAborted):
		return &APIError{Code: "TRANSACTION_ABORTED", Message: err.Error(), RecoveryHint: "Check the id exists, then retry"}
	case errors.Is(err, repository.ErrStoreUnavailable):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Check the database path and permissions"}
	default:
		return nil
	}
}

func toAPIError(err error) *APIError {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "INTERNAL_ERROR", Message: err.Error()}
}
