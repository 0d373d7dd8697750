package cli

import (
	"errors"

	"github.com/yaklabco/snipreview/internal/configloader"
	"github.com/yaklabco/snipreview/pkg/runner"
)

// Exit codes for snipreview.
const (
	// ExitSuccess indicates the review completed without error-kind issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates the review found error-kind issues.
	ExitIssuesFound = 1

	// ExitWarningsFound indicates warnings were found in strict mode.
	ExitWarningsFound = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// Sentinel errors mapped onto exit codes by ExitCodeForError.
var (
	// ErrIssuesFound signals error-kind issues. It carries no message for the user.
	ErrIssuesFound = errors.New("review issues found")

	// ErrWarningsFound signals warnings under --strict.
	ErrWarningsFound = errors.New("review warnings found")

	// ErrInvalidUsage marks bad flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded or validated.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result.HasErrors():
		return ExitIssuesFound
	case strict && result.HasWarnings():
		return ExitWarningsFound
	default:
		return ExitSuccess
	}
}

// ExitCodeForError maps an error returned by a command onto a process exit code.
func ExitCodeForError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssuesFound
	case errors.Is(err, ErrWarningsFound):
		return ExitWarningsFound
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsResultSignal reports whether err only carries the review outcome
// and should not be printed.
func IsResultSignal(err error) bool {
	return errors.Is(err, ErrIssuesFound) || errors.Is(err, ErrWarningsFound)
}
