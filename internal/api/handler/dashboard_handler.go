package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

const recentActivityLimit = 10

// DashboardHandler serves GET / — the default landing page.
type DashboardHandler struct {
	client *apiclient.Client
	log    zerolog.Logger
}

func NewDashboardHandler(client *apiclient.Client, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{client: client, log: log}
}

type dashboardData struct {
	Stats      apiclient.DashboardStats
	Activities []apiclient.Activity
}

// Home renders the stats overview. An API failure renders the page with an
// inline error instead of failing the navigation; the session stays valid.
func (h *DashboardHandler) Home(c echo.Context) error {
	snap, err := ctxSession(c)
	if err != nil {
		return err
	}

	page := view.Page{Title: "Dashboard", User: snap.User}
	var data dashboardData

	ctx := c.Request().Context()
	stats, err := h.client.GetDashboardStats(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("dashboard stats unavailable")
		page.Error = err.Error()
		page.Data = data
		return c.Render(http.StatusOK, "dashboard.html", page)
	}
	data.Stats = *stats

	if activities, err := h.client.RecentActivities(ctx, recentActivityLimit); err != nil {
		h.log.Warn().Err(err).Msg("recent activities unavailable")
	} else {
		data.Activities = activities
	}

	page.Data = data
	return c.Render(http.StatusOK, "dashboard.html", page)
}
