package errors

import (
	"net/http"

	"birdy/internal/errors"
)

// Kind classifies an error for callers that need to decide between retrying,
// re-prompting and aborting. It does not depend on the transport.
type Kind int

const (
	// KindUnexpected covers every error that is not a classified AppError.
	KindUnexpected Kind = iota
	KindAuthentication
	KindArgument
	KindDuplicateAccount
	KindDuplicateTag
	KindInsufficientRights
	KindTimeout
	KindConflict
	KindSessionLimit
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindArgument:
		return "argument"
	case KindDuplicateAccount:
		return "duplicate_account"
	case KindDuplicateTag:
		return "duplicate_tag"
	case KindInsufficientRights:
		return "insufficient_rights"
	case KindTimeout:
		return "timeout"
	case KindConflict:
		return "conflict"
	case KindSessionLimit:
		return "session_limit"
	default:
		return "unexpected"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Kind() Kind        // Transport-independent classification
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Kind returns the error classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches on the business error code so that WithDetails copies still
// satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// KindOf returns the classification of err, or KindUnexpected when err does
// not carry an AppError anywhere in its chain.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindUnexpected
}

// Predefined error types
var (
	// Authentication-related errors
	ErrInvalidSession = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"INVALID_SESSION",
		"Session token is missing, expired or revoked",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Wrong password",
		"",
	)

	ErrEmailNotConfirmed = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"EMAIL_NOT_CONFIRMED",
		"Email address must be confirmed before signing in",
		"",
	)

	// Argument errors
	ErrAccountNotFound = NewBaseError(
		KindArgument,
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"No account is registered for this login",
		"",
	)

	ErrUserNotFound = NewBaseError(
		KindArgument,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrNotFound = NewBaseError(
		KindArgument,
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrInvalidLink = NewBaseError(
		KindArgument,
		http.StatusBadRequest,
		"INVALID_LINK",
		"Invalid link",
		"",
	)

	ErrValidationFailed = NewBaseError(
		KindArgument,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		KindArgument,
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password does not meet the strength requirements",
		"",
	)

	// Registration errors
	ErrDuplicateAccount = NewBaseError(
		KindDuplicateAccount,
		http.StatusConflict,
		"DUPLICATE_ACCOUNT",
		"An account with this email already exists",
		"",
	)

	ErrDuplicateTag = NewBaseError(
		KindDuplicateTag,
		http.StatusForbidden,
		"DUPLICATE_TAG",
		"This unique tag is already taken",
		"",
	)

	// Authorization errors
	ErrInsufficientRights = NewBaseError(
		KindInsufficientRights,
		http.StatusForbidden,
		"INSUFFICIENT_RIGHTS",
		"Insufficient rights",
		"",
	)

	// Time-bound token errors
	ErrConfirmationExpired = NewBaseError(
		KindTimeout,
		http.StatusForbidden,
		"TIMEOUT",
		"Timeout",
		"",
	)

	// Conflict errors
	ErrConflict = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	ErrSessionLimitExceeded = NewBaseError(
		KindSessionLimit,
		http.StatusTooManyRequests,
		"SESSION_LIMIT_EXCEEDED",
		"Maximum number of concurrent sessions reached",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindUnexpected,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Kind reports database failures as unexpected.
func (e *DatabaseExecuteError) Kind() Kind {
	return KindUnexpected
}
