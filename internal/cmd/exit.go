package cmd

import (
	"errors"

	"gbd-mapping-generator/internal/diagnostic"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitResolutionError indicates metadata that could not be resolved,
	// linked or emitted.
	ExitResolutionError = 2

	// ExitDependencyUnavailable indicates the metadata source cannot be reached.
	ExitDependencyUnavailable = 3
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitResolutionError:
		return "Resolution Error"
	case ExitDependencyUnavailable:
		return "Dependency Unavailable"
	default:
		return "Unknown"
	}
}

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
	// Printed is set when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

var resolutionErrors = []error{
	diagnostic.ErrUnclassifiableDistribution,
	diagnostic.ErrUnclassifiableRestriction,
	diagnostic.ErrDuplicateNormalizedName,
	diagnostic.ErrMissingLookupEdge,
	diagnostic.ErrBrokenRelationship,
	diagnostic.ErrEmit,
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, diagnostic.ErrDependencyUnavailable) {
		return ExitDependencyUnavailable
	}

	for _, target := range resolutionErrors {
		if errors.Is(err, target) {
			return ExitResolutionError
		}
	}

	return ExitGeneralError
}
