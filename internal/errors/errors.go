// Package errors provides structured error types and exit codes for stagehand.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (stage failed, etc.)
	ExitConfigError      = 2 // Configuration error (invalid pipeline definition, etc.)
	ExitEnvironmentError = 3 // Environment error (missing tool, workspace unusable, etc.)
)

// LaunchExitCode is the sentinel exit code recorded when a stage's command
// could not be started at all (missing executable, permission denied).
// 127 matches the shell convention for "command not found".
const LaunchExitCode = 127

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindNotFound
	KindCheckout
	KindLaunch
	KindEnvironment
)

// Error is the base error type for stagehand.
type Error struct {
	Kind    ErrorKind
	Message string
	Stage   string // Stage name if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *Error {
	return &Error{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *Error {
	return Environment(fmt.Sprintf(format, args...))
}

// Checkout creates an error for a failed workspace checkout.
func Checkout(stage, message string, cause error) *Error {
	return &Error{
		Kind:    KindCheckout,
		Stage:   stage,
		Message: message,
		Cause:   cause,
	}
}

// Launch creates an error for a command that could not be started.
// Launch errors are distinct from commands that start and exit non-zero.
func Launch(stage, message string, cause error) *Error {
	return &Error{
		Kind:    KindLaunch,
		Stage:   stage,
		Message: message,
		Cause:   cause,
	}
}

// StageError creates a runtime error for a specific stage.
func StageError(stage, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Stage:   stage,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if se, ok := err.(*Error); ok {
		return se.ExitCode()
	}
	return ExitRuntimeError
}

// IsKind reports whether any error in err's unwrap chain is an *Error of
// the given kind. Walking the chain matters for wrapped failures, e.g. a
// checkout error whose cause is a launch failure.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if se, ok := err.(*Error); ok && se.Kind == kind {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
