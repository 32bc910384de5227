package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/core/domain"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the page.
//   - Renders the error page for browser navigation, a JSON envelope for
//     the probe endpoints.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		if wantsJSON(c) {
			_ = c.JSON(code, map[string]string{"error": msg})
			return
		}
		if renderErr := c.Render(code, "error.html", view.Page{Title: "Error", Error: msg}); renderErr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Management API failures pass their status and message through; a
	// transport failure (status 0) reads as a gateway problem.
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return http.StatusBadGateway, apiErr.Message
		}
		return apiErr.Status, apiErr.Message
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// wantsJSON keeps the machine endpoints machine-readable.
func wantsJSON(c echo.Context) bool {
	p := c.Path()
	return p == "/health" || p == "/health/ready" || p == "/metrics"
}
