package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/northcms/console-gateway/internal/core/domain"
)

// ctxSession extracts the session snapshot the route guard stashed in the
// request context. Its presence proves the guard ran; a handler reached
// without it is a wiring bug, answered with 401 rather than a render of
// someone else's state.
func ctxSession(c echo.Context) (domain.Session, error) {
	snap, ok := c.Get("console_session").(domain.Session)
	if !ok {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return snap, nil
}
