package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/digits"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess           = 0   // Indicates successful execution.
	ExitErrorGeneric      = 1   // Indicates a generic error.
	ExitErrorTimeout      = 2   // Indicates the operation timed out.
	ExitErrorMismatch     = 3   // Indicates a result mismatch between algorithms.
	ExitErrorConfig       = 4   // Indicates a configuration error.
	ExitErrorInvalidInput = 5   // Indicates an operand with a non-digit character.
	ExitErrorNegative     = 6   // Indicates a subtraction whose result would be negative.
	ExitErrorCanceled     = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised by a calculator while preserving
// the original cause, so callers can still match the arithmetic sentinels.
type CalculationError struct {
	// Calculator names the implementation that failed. May be empty.
	Calculator string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string {
	if e.Calculator == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Calculator, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Is reports a TimeoutError as a context.DeadlineExceeded so that
// IsContextError treats both alike.
func (e TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit status.
//
// Returns:
//   - int: ExitSuccess for nil, otherwise the most specific code that
//     matches somewhere in the error chain.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.Is(err, digits.ErrInvalidDigitCharacter), errors.As(err, &valErr):
		return ExitErrorInvalidInput
	case errors.Is(err, bigunsigned.ErrNegativeResult):
		return ExitErrorNegative
	default:
		return ExitErrorGeneric
	}
}

// ColorProvider supplies the escape sequences used when reporting errors.
// A nil provider disables coloring.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// HandleCalculationError reports err to out and returns its exit code.
//
// Parameters:
//   - err: The error returned by a calculation. nil is a no-op.
//   - duration: How long the calculation ran before failing.
//   - out: Destination of the report.
//   - colors: Color escape provider, or nil for plain output.
//
// Returns:
//   - int: The exit code from ExitCodeFor.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sCalculation stopped after %s: %v%s\n", colors.Yellow(), duration, err, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sCalculation canceled after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
