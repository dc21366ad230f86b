package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpggio/personalos/internal/domain/day"
	"github.com/rpggio/personalos/internal/domain/note"
	"github.com/rpggio/personalos/internal/domain/task"
	"github.com/rpggio/personalos/internal/repository"
)

func TestMapError(t *testing.T) {
	cases := map[string]struct {
		err  error
		code string
	}{
		"not found":    {fmt.Errorf("task 4: %w", ErrNotFound), "NOT_FOUND"},
		"invalid task": {fmt.Errorf("%w: title", task.ErrInvalidInput), "INVALID_INPUT"},
		"invalid date": {fmt.Errorf("ensuring: %w", day.ErrInvalidDate), "INVALID_INPUT"},
		"mood":         {day.ErrInvalidMood, "INVALID_MOOD"},
		"plan full":    {day.ErrPlanFull, "PLAN_FULL"},
		"plan item":    {day.ErrPlanItemNotFound, "PLAN_ITEM_NOT_FOUND"},
		"daily note":   {note.ErrDuplicateDailyNote, "DUPLICATE_DAILY_NOTE"},
		"missing id":   {repository.ErrMissingID, "MISSING_ID"},
		"constraint":   {fmt.Errorf("add days: %w: %w", repository.ErrConstraintViolation, errors.New("UNIQUE constraint failed")), "CONSTRAINT_VIOLATION"},
		"aborted":      {repository.ErrTransactionAborted, "TRANSACTION_ABORTED"},
		"store":        {repository.ErrStoreUnavailable, "STORE_UNAVAILABLE"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			apiErr := MapError(tc.err)
			if assert.NotNil(t, apiErr) {
				assert.Equal(t, tc.code, apiErr.Code)
				assert.NotEmpty(t, apiErr.RecoveryHint)
			}
		})
	}
}

func TestMapError_Unknown(t *testing.T) {
	assert.Nil(t, MapError(nil))
	assert.Nil(t, MapError(errors.New("boom")))

	apiErr := toAPIError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", apiErr.Code)
	assert.Equal(t, "boom", apiErr.Message)
}
