// Package middleware holds the route guard: the navigation decision
// between rendering a page, waiting, or redirecting, taken purely from the
// current session snapshot.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/northcms/console-gateway/internal/api/metrics"
	"github.com/northcms/console-gateway/internal/core/ports"
)

const (
	LoginPath = "/login"
	HomePath  = "/"

	// sessionContextKey is where the guard stashes the snapshot it decided
	// on, so the handler renders the same state the guard saw.
	sessionContextKey = "console_session"
)

// Protected guards routes that require an authenticated session. While a
// restore or login is in flight it renders the waiting page and makes no
// navigation decision; once resolved, an anonymous session is redirected
// to the login page with 303 See Other so the browser replaces the
// navigation instead of re-posting.
func Protected(sessions ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()

			if snap.IsLoading() {
				return c.Render(http.StatusOK, "loading.html", nil)
			}
			if !snap.IsAuthenticated() {
				metrics.GuardRedirectsTotal.WithLabelValues("login").Inc()
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}

			c.Set(sessionContextKey, snap)
			return next(c)
		}
	}
}

// PublicOnly guards the login page: an already-authenticated session is
// redirected to the default landing page instead of seeing the form.
func PublicOnly(sessions ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()

			if snap.IsLoading() {
				return c.Render(http.StatusOK, "loading.html", nil)
			}
			if snap.IsAuthenticated() {
				metrics.GuardRedirectsTotal.WithLabelValues("home").Inc()
				return c.Redirect(http.StatusSeeOther, HomePath)
			}

			c.Set(sessionContextKey, snap)
			return next(c)
		}
	}
}
