package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/vk/jpsloader/internal/loader"
)

// Exit codes returned through ExitError.
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// toExitError maps any command error onto an exit code.
func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	var notFound *loader.ConfigurationNotFoundError
	if errors.As(err, &notFound) {
		return &ExitError{Code: ExitNotFound, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
