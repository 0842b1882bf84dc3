package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/imtti/imtti-api/internal/config"
	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/handler"
	"github.com/imtti/imtti-api/internal/middleware"
	"github.com/imtti/imtti-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Store              *database.Store
	CenterHandler      *handler.CenterHandler
	StudentHandler     *handler.StudentHandler
	ApplicationHandler *handler.ApplicationHandler
	MarkHandler        *handler.MarkHandler
	AdminHandler       *handler.AdminHandler
	AuthHandler        *handler.AuthHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler(deps.Store.Available))

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/test", handler.TestConnection(cfg, deps.Store))
	api.Get("/health", handler.HealthCheck(cfg, deps.Store))

	requireStore := middleware.RequireStore(deps.Store)

	if deps.CenterHandler != nil {
		deps.CenterHandler.Register(api.Group("/centers", requireStore))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", requireStore))
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.Register(api.Group("/applications", requireStore))
	}
	if deps.MarkHandler != nil {
		deps.MarkHandler.Register(api.Group("/marks", requireStore))
	}
	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(api.Group("/admins", requireStore))
	}
	if deps.AuthHandler != nil {
		auth := api.Group("/auth",
			middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow),
			requireStore,
		)
		deps.AuthHandler.Register(auth)
	}

	app.Get("*", handler.IndexFallback(cfg.StaticDir))
}
