package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

// MenuHandler serves the site menu management screen.
type MenuHandler struct {
	client *apiclient.Client
	log    zerolog.Logger
}

func NewMenuHandler(client *apiclient.Client, log zerolog.Logger) *MenuHandler {
	return &MenuHandler{client: client, log: log}
}

type menuListData struct {
	Items []apiclient.MenuItem
}

// List handles GET /menu.
func (h *MenuHandler) List(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}

	p := view.Page{Title: "Menu", User: snap.User}
	items, err := h.client.ListMenus(c.Request().Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("menu list unavailable")
		p.Error = err.Error()
	}
	p.Data = menuListData{Items: items}

	return c.Render(http.StatusOK, "menus.html", p)
}

// Create handles POST /menu.
func (h *MenuHandler) Create(c echo.Context) error {
	form, err := bindMenuForm(c)
	if err != nil {
		return err
	}
	if err := h.client.CreateMenu(c.Request().Context(), menuInput(form)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/menu")
}

// Update handles POST /menu/:id.
func (h *MenuHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	form, err := bindMenuForm(c)
	if err != nil {
		return err
	}
	if err := h.client.UpdateMenu(c.Request().Context(), id, menuInput(form)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/menu")
}

// Delete handles POST /menu/:id/delete.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.client.DeleteMenu(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/menu")
}

func bindMenuForm(c echo.Context) (menuForm, error) {
	var form menuForm
	if err := c.Bind(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return form, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return form, nil
}

func menuInput(form menuForm) apiclient.MenuInput {
	return apiclient.MenuInput{
		Title:   form.Title,
		Path:    form.Path,
		Icon:    form.Icon,
		Visible: form.Visible,
	}
}
