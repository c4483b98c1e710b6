package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command errors.
const (
	TextCodeValidation     = "COMMAND_VALIDATION_FAILED"
	TextCodeCanceled       = "COMMAND_CONTEXT_CANCELED"
	TextCodeTimeout        = "COMMAND_CONTEXT_TIMEOUT"
	TextCodeContextError   = "COMMAND_CONTEXT_ERROR"
	TextCodeExecuteFailure = "COMMAND_EXECUTION_FAILED"
)

// IsValidation reports whether err was rejected before execution.
func IsValidation(err error) bool {
	return err != nil && goerrors.IsCategory(err, goerrors.CategoryValidation)
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(TextCodeValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	message, code := "command context error", TextCodeContextError
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "command execution cancelled", TextCodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "command execution deadline exceeded", TextCodeTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(TextCodeExecuteFailure)
}
