// Package middleware contains echo middleware specific to the JSON API.
package middleware

import (
	"log/slog"
	"net/http"

	"birdy/config"
	"birdy/internal/delivery/api/response"
	deliverycontext "birdy/internal/delivery/context"
	domainerrors "birdy/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	codeHTTPError     = "HTTP_ERROR"
	codeInternalError = "INTERNAL_ERROR"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	write := response.Error
	if m.debug {
		write = response.ErrorVerbose
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnhandled(c, err)
		}

		details := appErr.Details()
		if m.debug && appErr.Kind() == domainerrors.KindUnexpected {
			details = err.Error()
		}

		_ = write(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = write(c, httpErr.Code, codeHTTPError, message, nil)

		return
	}

	m.logUnhandled(c, err)

	var details any
	if m.debug {
		details = err.Error()
	}

	_ = write(c, http.StatusInternalServerError, codeInternalError, "Internal server error, please try again later", details)
}

func (m *ErrorMiddleware) logUnhandled(c echo.Context, err error) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
