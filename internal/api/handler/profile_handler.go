package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/core/domain"
	"github.com/northcms/console-gateway/internal/core/ports"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

// ProfileHandler serves the signed-in user's profile screen. Profile
// failures render inline on this page only; they never touch the session's
// global error field, and a failed update cannot log the user out.
type ProfileHandler struct {
	sessions ports.SessionManager
	client   *apiclient.Client
	log      zerolog.Logger
}

func NewProfileHandler(sessions ports.SessionManager, client *apiclient.Client, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, client: client, log: log}
}

type profileData struct {
	User   *domain.User
	Notice string
}

// Show handles GET /profile.
func (h *ProfileHandler) Show(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "profile.html", view.Page{
		Title: "Profile",
		User:  snap.User,
		Data:  profileData{User: snap.User},
	})
}

// Update handles POST /profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form profileForm
	if err := c.Bind(&form); err != nil {
		return h.renderWithError(c, snap.User, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderWithError(c, snap.User, err.Error())
	}

	res := h.sessions.UpdateProfile(c.Request().Context(), domain.ProfilePatch{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if !res.Success {
		return h.renderWithError(c, snap.User, res.Message)
	}

	// Re-read the snapshot: the manager replaced the user record.
	updated := h.sessions.Snapshot()
	return c.Render(http.StatusOK, "profile.html", view.Page{
		Title: "Profile",
		User:  updated.User,
		Data:  profileData{User: updated.User, Notice: "Profile updated."},
	})
}

// ChangePassword handles POST /profile/password.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form passwordForm
	if err := c.Bind(&form); err != nil {
		return h.renderWithError(c, snap.User, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderWithError(c, snap.User, err.Error())
	}

	if err := h.client.ChangePassword(c.Request().Context(), form.CurrentPassword, form.NewPassword); err != nil {
		h.log.Warn().Err(err).Msg("password change failed")
		return h.renderWithError(c, snap.User, err.Error())
	}

	return c.Render(http.StatusOK, "profile.html", view.Page{
		Title: "Profile",
		User:  snap.User,
		Data:  profileData{User: snap.User, Notice: "Password changed."},
	})
}

func (h *ProfileHandler) renderWithError(c echo.Context, user *domain.User, msg string) error {
	return c.Render(http.StatusUnprocessableEntity, "profile.html", view.Page{
		Title: "Profile",
		User:  user,
		Error: msg,
		Data:  profileData{User: user},
	})
}
