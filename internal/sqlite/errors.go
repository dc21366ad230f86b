package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/personalos/internal/repository"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// classify maps a failed transaction onto the store error taxonomy, keeping
// the driver error matchable.
func classify(err error) error {
	switch {
	case errors.Is(err, repository.ErrStoreUnavailable),
		errors.Is(err, repository.ErrConstraintViolation),
		errors.Is(err, repository.ErrTransactionAborted):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", repository.ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %w", repository.ErrTransactionAborted, err)
	}
}
