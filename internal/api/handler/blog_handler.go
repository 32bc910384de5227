package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

const (
	defaultBlogPage  = 1
	defaultBlogLimit = 10
)

// BlogHandler serves the blog management screen and its CRUD actions.
type BlogHandler struct {
	client *apiclient.Client
	log    zerolog.Logger
}

func NewBlogHandler(client *apiclient.Client, log zerolog.Logger) *BlogHandler {
	return &BlogHandler{client: client, log: log}
}

type blogListData struct {
	Posts      []apiclient.BlogPost
	Pagination apiclient.Pagination
	Search     string
}

// List handles GET /blog with page, limit and search query parameters.
func (h *BlogHandler) List(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}

	page := queryInt(c, "page", defaultBlogPage)
	limit := queryInt(c, "limit", defaultBlogLimit)
	search := c.QueryParam("search")

	p := view.Page{Title: "Blog", User: snap.User}
	posts, pagination, err := h.client.ListBlogs(c.Request().Context(), page, limit, search)
	if err != nil {
		h.log.Warn().Err(err).Msg("blog list unavailable")
		p.Error = err.Error()
	}
	p.Data = blogListData{Posts: posts, Pagination: pagination, Search: search}

	return c.Render(http.StatusOK, "blogs.html", p)
}

// Create handles POST /blog.
func (h *BlogHandler) Create(c echo.Context) error {
	var form blogForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.client.CreateBlog(c.Request().Context(), blogInput(form)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/blog")
}

// Update handles POST /blog/:id.
func (h *BlogHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var form blogForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.client.UpdateBlog(c.Request().Context(), id, blogInput(form)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/blog")
}

// Delete handles POST /blog/:id/delete.
func (h *BlogHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.client.DeleteBlog(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/blog")
}

// Reorder handles POST /blog/order with a comma-separated ID list.
func (h *BlogHandler) Reorder(c echo.Context) error {
	var form blogOrderForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ids, err := parseIDList(form.Order)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.client.ReorderBlogs(c.Request().Context(), ids); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/blog")
}

func blogInput(form blogForm) apiclient.BlogInput {
	return apiclient.BlogInput{
		Title:   form.Title,
		Summary: form.Summary,
		Content: form.Content,
		Image:   form.Image,
		Active:  form.Active,
	}
}

// parseIDList turns "3,1,2" into []int{3, 1, 2}.
func parseIDList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "order must be a comma-separated list of post IDs")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
