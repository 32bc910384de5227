package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

// ShowcaseHandler serves the services screen backed by showcase entries.
type ShowcaseHandler struct {
	client *apiclient.Client
	log    zerolog.Logger
}

func NewShowcaseHandler(client *apiclient.Client, log zerolog.Logger) *ShowcaseHandler {
	return &ShowcaseHandler{client: client, log: log}
}

type showcaseListData struct {
	Items []apiclient.Showcase
}

// List handles GET /services.
func (h *ShowcaseHandler) List(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}

	p := view.Page{Title: "Services", User: snap.User}
	items, err := h.client.ListShowcases(c.Request().Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("showcase list unavailable")
		p.Error = err.Error()
	}
	p.Data = showcaseListData{Items: items}

	return c.Render(http.StatusOK, "services.html", p)
}

// Create handles POST /services.
func (h *ShowcaseHandler) Create(c echo.Context) error {
	form, err := bindShowcaseForm(c)
	if err != nil {
		return err
	}
	if err := h.client.CreateShowcase(c.Request().Context(), showcaseInput(form)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/services")
}

// Update handles POST /services/:id.
func (h *ShowcaseHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	form, err := bindShowcaseForm(c)
	if err != nil {
		return err
	}
	if err := h.client.UpdateShowcase(c.Request().Context(), id, showcaseInput(form)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/services")
}

// Delete handles POST /services/:id/delete.
func (h *ShowcaseHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.client.DeleteShowcase(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/services")
}

func bindShowcaseForm(c echo.Context) (showcaseForm, error) {
	var form showcaseForm
	if err := c.Bind(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return form, nil
}

func showcaseInput(form showcaseForm) apiclient.ShowcaseInput {
	return apiclient.ShowcaseInput{
		Title: form.Title,
		Image: form.Image,
		Link:  form.Link,
	}
}
