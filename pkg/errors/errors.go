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
	// Connection errors (1xxx)
	ErrCodeConnectionFailed     ErrorCode = "CART1001"
	ErrCodeConnectionTimeout    ErrorCode = "CART1002"
	ErrCodeAuthenticationFailed ErrorCode = "CART1003"

	// Configuration errors (2xxx)
	ErrCodeConfigNotFound ErrorCode = "CART2001"
	ErrCodeConfigInvalid  ErrorCode = "CART2002"

	// Source data errors (3xxx)
	ErrCodeSourceUnavailable ErrorCode = "CART3001"
	ErrCodeSourceFormat      ErrorCode = "CART3002"
	ErrCodeMalformedInput    ErrorCode = "CART3003"
	ErrCodeMissingColumn     ErrorCode = "CART3004"

	// SQL execution errors (4xxx)
	ErrCodeSQLExecution         ErrorCode = "CART4001"
	ErrCodeSQLTransaction       ErrorCode = "CART4002"
	ErrCodeReferentialIntegrity ErrorCode = "CART4003"
	ErrCodeEnumDomain           ErrorCode = "CART4004"
	ErrCodeDuplicateEntry       ErrorCode = "CART4005"

	// Validation errors (6xxx)
	ErrCodeValidationFailed ErrorCode = "CART6001"
	ErrCodeInvalidInput     ErrorCode = "CART6002"
	ErrCodeUserInput        ErrorCode = "CART6003"

	// System errors (9xxx)
	ErrCodeInternal ErrorCode = "CART9001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // System failure, requires immediate attention
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed, but system continues
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
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
		Code:      code,
		Message:   message,
		Severity:  SeverityError,
		Context:   make(map[string]interface{}),
		Stack:     captureStack(),
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// If wrapping another AppError, inherit its context
	if ae, ok := err.(*AppError); ok {
		for k, v := range ae.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// wrapOrNew builds an AppError around cause, which may be nil. Constructors
// use it so a missing cause still yields a usable error; Wrap itself keeps
// returning nil for a nil cause.
func wrapOrNew(cause error, code ErrorCode, message string) *AppError {
	if cause == nil {
		return New(code, message)
	}
	return Wrap(cause, code, message)
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

// ConnectionError creates a connection-related error
func ConnectionError(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeConnectionFailed, message).
		WithSeverity(SeverityError).
		WithSuggestions(
			"Check that the MySQL server is running and reachable",
			"Verify the host and port in the configuration",
		)
}

// ConfigError creates a configuration-related error
func ConfigError(message string, field string) *AppError {
	return New(ErrCodeConfigInvalid, message).
		WithContext("field", field).
		WithSuggestions(
			fmt.Sprintf("Check the '%s' configuration value", field),
			"Run 'cartload setup' to reconfigure",
		)
}

// SQLError creates an SQL execution error
func SQLError(message string, query string, cause error) *AppError {
	err := wrapOrNew(cause, ErrCodeSQLExecution, message).
		WithContext("query", truncateString(query, 200))

	if cause != nil {
		causeStr := cause.Error()
		if strings.Contains(causeStr, "foreign key constraint") {
			err.Code = ErrCodeReferentialIntegrity
			_ = err.WithSuggestions(
				"A row references an order or company absent from the orders table",
				"Check the source datasets for dangling identifiers",
			)
		} else if strings.Contains(causeStr, "Data truncated") || strings.Contains(causeStr, "Incorrect enum value") {
			err.Code = ErrCodeEnumDomain
			_ = err.WithSuggestions(
				"A derived value is outside the column's ENUM domain",
				"Verify the schema declares every derived label",
			)
		} else if strings.Contains(causeStr, "Duplicate entry") {
			err.Code = ErrCodeDuplicateEntry
		}
	}

	return err
}

// MalformedInputError creates an error for a raw field that fails to parse.
// cause may be nil: a value can be well-formed for its type yet still outside
// the accepted domain (a Converted flag of "2").
func MalformedInputError(table, column, value string, cause error) *AppError {
	return wrapOrNew(cause, ErrCodeMalformedInput,
		fmt.Sprintf("%s.%s: cannot parse %q", table, column, value)).
		WithContext("table", table).
		WithContext("column", column).
		WithSuggestions(
			"Check the raw dataset for rows that do not match the expected format",
		)
}

// ValidationError creates a validation error
func ValidationError(field string, value interface{}, reason string) *AppError {
	return New(ErrCodeValidationFailed, fmt.Sprintf("Validation failed for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		WithSeverity(SeverityWarning)
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
