// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for linediff commands.
//
// Handlers always return errors; Main decides how to display them and
// which exit code to use.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/linediff/internal/diff"
	"github.com/jeranaias/linediff/internal/ui/styles"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution (and identical inputs
	// under --exit-code)
	ExitSuccess = 0
	// ExitDifferent indicates the inputs differ under --exit-code, or a
	// general error
	ExitDifferent = 1
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates an input file was not found
	ExitNotFoundError = 7
	// ExitTooLarge indicates the inputs exceed the configured limits
	ExitTooLarge = 9
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "diff", "config")
	Action  string // Action being performed (e.g., "read", "save")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "file")
	ID       string // Identifier that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConfigError wraps a failure to load, validate or save configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// ErrUnsupportedValue creates an error for a value outside a fixed set.
func ErrUnsupportedValue(field, value string, supported []string) error {
	return NewValidationErrorWithExample(
		field,
		value,
		"unsupported value",
		fmt.Sprintf("supported values: %v", supported),
	)
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err in a consistent format: a JSON envelope to out in
// JSON mode, otherwise a styled line to errOut.
func DisplayError(out, errOut io.Writer, command string, err error, jsonMode bool, theme *styles.Theme) {
	if err == nil {
		return
	}

	if jsonMode {
		resp := NewJSONErrorResponse(command, err)
		resp.ErrorType = ErrorType(err)
		_ = resp.Write(out)
		return
	}

	if theme == nil {
		theme = styles.PlainTheme()
	}
	fmt.Fprintf(errOut, "%s %s\n", theme.Error.Render("linediff:"), err.Error())
}

// ErrorType names the category of err for JSON output.
func ErrorType(err error) string {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		configErr     *ConfigError
		commandErr    *CommandError
	)
	switch {
	case errors.Is(err, diff.ErrInputTooLarge):
		return "input_too_large"
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &notFoundErr):
		return "not_found_error"
	case errors.As(err, &configErr):
		return "config_error"
	case errors.As(err, &commandErr):
		return "command_error"
	default:
		return "generic_error"
	}
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, diff.ErrInputTooLarge) {
		return ExitTooLarge
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return ExitNotFoundError
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	return ExitGeneralError
}
