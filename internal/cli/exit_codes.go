package cli

import (
	"errors"
	"strconv"
)

// Exit codes for the svalid CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates every document validated clean
	ExitSuccess = 0

	// ExitInvalid indicates at least one document was invalid or a
	// validation failed to execute
	ExitInvalid = 1

	// ExitConfigError indicates configuration or requirement problems
	// detected before any work started
	ExitConfigError = 2

	// ExitBuildFailed indicates at least one rule source failed to compile
	ExitBuildFailed = 3
)

// ExitCodeError carries a process exit code through the cobra error path.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return "exit code " + strconv.Itoa(e.Code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &ExitCodeError{Code: code}
}

// ExitCode returns the exit code from an error. A nil error is success;
// an error without an embedded code maps to ExitConfigError.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitConfigError
}
