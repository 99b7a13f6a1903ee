package cli

import (
	"errors"

	"github.com/yaklabco/gotextlint/pkg/runner"
)

// Exit codes for gotextlint.
const (
	// ExitSuccess indicates successful execution with no failing issues.
	ExitSuccess = 0

	// ExitLintErrors indicates error-severity findings or files that could
	// not be processed. Command failures use it too.
	ExitLintErrors = 1

	// ExitLintWarnings indicates warnings under --strict.
	ExitLintWarnings = 2
)

// Signals returned from RunE to select the exit code. They carry no
// message worth logging.
var (
	ErrLintIssuesFound   = errors.New("lint issues found")
	ErrLintWarningsFound = errors.New("lint warnings found")
)

// ExitCodeFromResult determines the exit code of a run. Autofix findings
// never fail a run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitLintErrors
	}
	if strict && result.HasWarnings() {
		return ExitLintWarnings
	}
	return ExitSuccess
}

// errorForExitCode maps an exit code to the signal RunE returns.
func errorForExitCode(code int) error {
	switch code {
	case ExitSuccess:
		return nil
	case ExitLintWarnings:
		return ErrLintWarningsFound
	default:
		return ErrLintIssuesFound
	}
}

// ExitCode maps the error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintWarningsFound):
		return ExitLintWarnings
	default:
		return ExitLintErrors
	}
}

// IsExitSignal reports whether err only selects the exit code.
func IsExitSignal(err error) bool {
	return errors.Is(err, ErrLintIssuesFound) || errors.Is(err, ErrLintWarningsFound)
}
