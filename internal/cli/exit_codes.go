package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

// Exit codes for the changelint CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = clierrors.ExitSuccess

	// ExitValidationFailed indicates lint or format validation failed
	ExitValidationFailed = clierrors.ExitValidationFailed

	// ExitInvalidArguments indicates invalid command arguments or config
	ExitInvalidArguments = clierrors.ExitInvalidArguments

	// ExitMissingDependencies indicates a required file or repository is missing
	ExitMissingDependencies = clierrors.ExitMissingDependencies

	// ExitTimeout indicates a remote operation timed out
	ExitTimeout = clierrors.ExitTimeout
)

// ExitError carries an exit code for a failure whose details have already
// been printed.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitCode prints err (unless already reported) and maps it to a process
// exit code.
func exitCode(w io.Writer, err error, plain bool) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr, plain)
		return cliErr.ExitCode()
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	if strings.HasPrefix(err.Error(), "unknown command") {
		return ExitInvalidArguments
	}
	return ExitValidationFailed
}
