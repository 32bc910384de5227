package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/core/ports"
)

// AuthHandler serves the login page and the logout action.
type AuthHandler struct {
	sessions ports.SessionManager
}

func NewAuthHandler(sessions ports.SessionManager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// LoginPage handles GET /login — renders the form, with the session's last
// login error inline when there is one.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	snap := h.sessions.Snapshot()
	return c.Render(http.StatusOK, "login.html", view.Page{
		Title: "Sign in",
		Error: snap.Error,
	})
}

// Login handles POST /login. A rejected attempt re-renders the form with
// the failure message inline; success redirects to the dashboard.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", view.Page{
			Title: "Sign in",
			Error: "invalid form submission",
		})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "login.html", view.Page{
			Title: "Sign in",
			Error: err.Error(),
		})
	}

	res := h.sessions.Login(c.Request().Context(), ports.Credentials{
		Username:   form.Username,
		Password:   form.Password,
		RememberMe: form.RememberMe,
	})
	if !res.Success {
		return c.Render(http.StatusUnauthorized, "login.html", view.Page{
			Title: "Sign in",
			Error: res.Message,
		})
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles POST /logout. The session manager guarantees local
// cleanup whatever the remote notification does, so this always lands on
// the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/login")
}
