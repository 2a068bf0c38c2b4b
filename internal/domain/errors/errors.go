// Package errors defines the application error taxonomy. Every failure a
// workflow can produce maps to a fixed HTTP status and a stable, user-safe
// message; the delivery layer translates these without inspecting causes.
package errors

import (
	"net/http"

	"github.com/VaibhavPTM/resort-sas-project/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
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

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. Messages are fixed and user-safe; login failures
// for a missing account and a wrong password share one message so the API
// gives no account-enumeration signal.
var (
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"An account with this email already exists.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password.",
		"",
	)

	ErrWrongAuthProvider = NewBaseError(
		http.StatusBadRequest,
		"WRONG_AUTH_PROVIDER",
		"This account uses Google sign-in. Please log in with Google.",
		"",
	)

	ErrAccountDeactivated = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_DEACTIVATED",
		"Account is deactivated.",
		"",
	)

	ErrAuthenticationRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTHENTICATION_REQUIRED",
		"Authentication required. Please log in.",
		"",
	)

	ErrAccountGone = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_GONE",
		"User no longer exists.",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Token expired. Please log in again.",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Invalid token.",
		"",
	)

	ErrOAuthNotConfigured = NewBaseError(
		http.StatusServiceUnavailable,
		"OAUTH_NOT_CONFIGURED",
		"Google OAuth is not configured.",
		"",
	)

	ErrOAuthTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_TOKEN_EXPIRED",
		"Google token expired. Please try again.",
		"",
	)

	ErrOAuthTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_TOKEN_INVALID",
		"Google sign-in failed. Please try again.",
		"",
	)

	ErrOAuthEmailMissing = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_EMAIL_MISSING",
		"Google account did not provide an email.",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal Server Error",
		"",
	)
)
