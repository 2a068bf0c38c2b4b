// Package middleware contains the HTTP middlewares of the delivery layer.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/VaibhavPTM/resort-sas-project/config"
	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http/response"
	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http/validator"
	domainerrors "github.com/VaibhavPTM/resort-sas-project/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware translates every error leaving a handler into the
// response envelope. It is installed as Echo's HTTPErrorHandler.
type ErrorMiddleware struct {
	logger     *slog.Logger
	production bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:     logger,
		production: cfg.IsProduction(),
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Request validation failures carry field details.
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.ValidationError(c, domainerrors.ErrValidationFailed.Message(), validationErr.Fields)

		return
	}

	// Workflow errors map to a fixed status and user-safe message.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	// Echo's own errors (404, 405, body too large).
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		_ = response.Error(c, httpErr.Code, message)

		return
	}

	// Everything else is an internal failure. Log the cause server-side and
	// never leak it to production clients.
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	message := domainerrors.ErrInternalError.Message()
	if !m.production {
		message = err.Error()
	}
	_ = response.Error(c, http.StatusInternalServerError, message)
}
