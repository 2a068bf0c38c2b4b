// Package response defines the unified API response envelope.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"` // User-friendly message
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single request-validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error error response
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// ValidationError 422 response carrying per-field failures
func ValidationError(c echo.Context, message string, fieldErrors []FieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

// BindingError binding error response
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

// NotFound 404 error
func NotFound(c echo.Context, message string) error {
	return Error(c, http.StatusNotFound, message)
}
