package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

// SettingsHandler serves the site settings and company screens.
type SettingsHandler struct {
	client *apiclient.Client
	log    zerolog.Logger
}

func NewSettingsHandler(client *apiclient.Client, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{client: client, log: log}
}

type settingsData struct {
	Settings apiclient.Settings
	Company  apiclient.Company
}

// Show handles GET /settings — both the site settings and the company
// record on one screen.
func (h *SettingsHandler) Show(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}

	p := view.Page{Title: "Settings", User: snap.User}
	var data settingsData

	ctx := c.Request().Context()
	if settings, err := h.client.GetSettings(ctx); err != nil {
		h.log.Warn().Err(err).Msg("settings unavailable")
		p.Error = err.Error()
	} else {
		data.Settings = *settings
	}
	if company, err := h.client.GetCompany(ctx); err != nil {
		h.log.Warn().Err(err).Msg("company record unavailable")
		if p.Error == "" {
			p.Error = err.Error()
		}
	} else {
		data.Company = *company
	}

	p.Data = data
	return c.Render(http.StatusOK, "settings.html", p)
}

// Update handles POST /settings.
func (h *SettingsHandler) Update(c echo.Context) error {
	var form settingsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	settings := apiclient.Settings{
		SiteTitle:       form.SiteTitle,
		Description:     form.Description,
		Keywords:        form.Keywords,
		MaintenanceMode: form.MaintenanceMode,
	}
	if err := h.client.UpdateSettings(c.Request().Context(), settings); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/settings")
}

// UpdateCompany handles POST /settings/company.
func (h *SettingsHandler) UpdateCompany(c echo.Context) error {
	var form companyForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	company := apiclient.Company{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Address: form.Address,
	}
	if err := h.client.UpdateCompany(c.Request().Context(), company); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/settings")
}
