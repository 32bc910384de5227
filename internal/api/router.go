package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/northcms/console-gateway/internal/api/handler"
	"github.com/northcms/console-gateway/internal/api/middleware"
	"github.com/northcms/console-gateway/internal/api/view"
	"github.com/northcms/console-gateway/internal/core/ports"
	"github.com/northcms/console-gateway/internal/infrastructure/apiclient"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Sessions ports.SessionManager
	Client   *apiclient.Client
	Log      zerolog.Logger
	// StoreCheck probes the session store backend for the readiness probe.
	StoreCheck handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("console"))

	protected := middleware.Protected(deps.Sessions)
	publicOnly := middleware.PublicOnly(deps.Sessions)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	dashboardHandler := handler.NewDashboardHandler(deps.Client, deps.Log)
	blogHandler := handler.NewBlogHandler(deps.Client, deps.Log)
	menuHandler := handler.NewMenuHandler(deps.Client, deps.Log)
	showcaseHandler := handler.NewShowcaseHandler(deps.Client, deps.Log)
	settingsHandler := handler.NewSettingsHandler(deps.Client, deps.Log)
	profileHandler := handler.NewProfileHandler(deps.Sessions, deps.Client, deps.Log)

	// --- Public-only routes (login screen) ---
	e.GET("/login", authHandler.LoginPage, publicOnly)
	e.POST("/login", authHandler.Login, publicOnly)
	e.POST("/logout", authHandler.Logout, protected)

	// --- Protected screens ---
	e.GET("/", dashboardHandler.Home, protected)

	blog := e.Group("/blog", protected)
	blog.GET("", blogHandler.List)
	blog.POST("", blogHandler.Create)
	blog.POST("/order", blogHandler.Reorder)
	blog.POST("/:id", blogHandler.Update)
	blog.POST("/:id/delete", blogHandler.Delete)

	menu := e.Group("/menu", protected)
	menu.GET("", menuHandler.List)
	menu.POST("", menuHandler.Create)
	menu.POST("/:id", menuHandler.Update)
	menu.POST("/:id/delete", menuHandler.Delete)

	services := e.Group("/services", protected)
	services.GET("", showcaseHandler.List)
	services.POST("", showcaseHandler.Create)
	services.POST("/:id", showcaseHandler.Update)
	services.POST("/:id/delete", showcaseHandler.Delete)

	settings := e.Group("/settings", protected)
	settings.GET("", settingsHandler.Show)
	settings.POST("", settingsHandler.Update)
	settings.POST("/company", settingsHandler.UpdateCompany)

	profile := e.Group("/profile", protected)
	profile.GET("", profileHandler.Show)
	profile.POST("", profileHandler.Update)
	profile.POST("/password", profileHandler.ChangePassword)

	// --- Probes and metrics (no guard) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(
		deps.StoreCheck,
		handler.DependencyCheck{Name: "management_api", Check: deps.Client.Ping},
	)

	e.GET("/health", healthHandler.Liveness)              // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)    // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// Unknown paths fall back to the default landing page; the guard on /
	// then decides between dashboard and login.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, middleware.HomePath)
	})

	return e, nil
}
