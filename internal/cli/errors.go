package cli

import (
	"errors"
	"fmt"

	"github.com/rpggio/personalos/internal/domain/daycontext"
	"github.com/rpggio/personalos/internal/repository"
)

const (
	ExitCodeSuccess = 0
	ExitCodeGeneric = 1
	ExitCodeUsage   = 2
	ExitCodeStore   = 3
)

type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ExitError) ExitCode() int {
	if e == nil {
		return ExitCodeGeneric
	}
	return e.Code
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf(format, args...)}
}

// classify attaches an exit code to err based on what failed.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return err
	}
	switch {
	case errors.Is(err, daycontext.ErrInvalidDate):
		return &ExitError{Code: ExitCodeUsage, Err: err}
	case errors.Is(err, repository.ErrStoreUnavailable):
		return &ExitError{Code: ExitCodeStore, Err: err}
	default:
		return &ExitError{Code: ExitCodeGeneric, Err: err}
	}
}
