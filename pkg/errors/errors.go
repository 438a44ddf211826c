package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Dataset source errors (1xxx)
	ErrCodeSourceConnection  ErrorCode = "LCHK1001"
	ErrCodeSourceTimeout     ErrorCode = "LCHK1002"
	ErrCodeSourceUnavailable ErrorCode = "LCHK1003"
	ErrCodeSourceRead        ErrorCode = "LCHK1004"
	ErrCodeFileNotFound      ErrorCode = "LCHK1005"

	// Configuration errors (2xxx)
	ErrCodeConfigNotFound ErrorCode = "LCHK2001"
	ErrCodeConfigInvalid  ErrorCode = "LCHK2002"

	// Schema errors (3xxx)
	ErrCodeSchemaMismatch   ErrorCode = "LCHK3001"
	ErrCodeTypeMismatch     ErrorCode = "LCHK3002"
	ErrCodeUnknownDimension ErrorCode = "LCHK3003"

	// Evaluation errors (4xxx)
	ErrCodeEmptyInput       ErrorCode = "LCHK4001"
	ErrCodeUndefinedRatio   ErrorCode = "LCHK4002"
	ErrCodeEvaluationFailed ErrorCode = "LCHK4003"

	// System errors (9xxx)
	ErrCodeInternal           ErrorCode = "LCHK9001"
	ErrCodeTimeout            ErrorCode = "LCHK9002"
	ErrCodeResourceExhausted  ErrorCode = "LCHK9003"
	ErrCodeServiceUnavailable ErrorCode = "LCHK9004"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // Run cannot continue
	SeverityError    ErrorSeverity = "ERROR"    // Evaluation failed, run continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Evaluation succeeded with issues
	SeverityInfo     ErrorSeverity = "INFO"     // Informational, not an error
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Recoverable bool
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Severity:    SeverityError,
		Context:     make(map[string]interface{}),
		Stack:       captureStack(),
		Timestamp:   time.Now(),
		Recoverable: false,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit some properties
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// AsRecoverable marks the error as recoverable
func (e *AppError) AsRecoverable() *AppError {
	e.Recoverable = true
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// SchemaMismatch creates an error for a required column missing from a relation.
// Fatal to the evaluation that needed the column, never to the whole run.
func SchemaMismatch(relation, field string) *AppError {
	return New(ErrCodeSchemaMismatch,
		fmt.Sprintf("Relation %q has no column %q", relation, field)).
		WithContext("relation", relation).
		WithContext("field", field).
		WithSuggestions(
			"Check the source table or CSV header for the expected column",
			"Verify the column mapping in the configuration",
		)
}

// EmptyInput creates an error for an evaluation over a zero-row relation.
// Distinguishable from a computed zero score.
func EmptyInput(relation string) *AppError {
	return New(ErrCodeEmptyInput,
		fmt.Sprintf("Relation %q has no rows", relation)).
		WithContext("relation", relation).
		WithSeverity(SeverityWarning).
		AsRecoverable()
}

// UndefinedRatio creates an error for a division-by-zero in a variance or
// percentage calculation. Callers surface it as an explicit undefined value.
func UndefinedRatio(detail string) *AppError {
	return New(ErrCodeUndefinedRatio,
		fmt.Sprintf("Ratio is undefined: %s", detail)).
		WithSeverity(SeverityWarning).
		AsRecoverable()
}

// ConnectionError creates a dataset-source connection error
func ConnectionError(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeSourceConnection, message).
		WithSeverity(SeverityError).
		WithSuggestions(
			"Check your network connection",
			"Verify the database endpoint is accessible",
			"Check the DSN in the configuration",
		)
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'ledgercheck init' to reconfigure",
		)
}

// SourceError creates a dataset read error
func SourceError(message string, source string, cause error) *AppError {
	return Wrap(cause, ErrCodeSourceRead, message).
		WithContext("source", source)
}

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
