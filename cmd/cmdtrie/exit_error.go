// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"cmdtrie-cli/internal/dispatch"
	"cmdtrie-cli/internal/runner"
)

const (
	exitFailure = 1
	// exitUsage is returned when command words or arguments do not resolve.
	exitUsage = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps an error returned by the command tree to a process status.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var scriptErr *runner.ExitError
	if errors.As(err, &scriptErr) {
		return scriptErr.Code
	}
	var resolveErr *dispatch.ResolveError
	if errors.As(err, &resolveErr) || errors.Is(err, dispatch.ErrInvalidArguments) {
		return exitUsage
	}
	return exitFailure
}
