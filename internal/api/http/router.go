package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusflow/disruption-service/internal/api/http/handlers"
	"github.com/campusflow/disruption-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Disruptions    *handlers.DisruptionsHandler
	Tone           *handlers.ToneHandler
	Admin          *handlers.AdminHandler
	Notifications  *handlers.NotificationsHandler
	Uploads        *handlers.UploadsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The single-record read and the tone probe
// stay public; everything else goes through the bearer middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/analyze-tone", cfg.Tone.Analyze)
	api.Get("/departments", cfg.Disruptions.ListCategories)
	api.Get("/disruptions/student/:studentRef", cfg.AuthMiddleware.Handle, cfg.Disruptions.ListByStudent)
	api.Get("/disruptions/admin/:category", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Disruptions.ListByCategory)
	api.Post("/disruptions", cfg.AuthMiddleware.Handle, cfg.Disruptions.Create)
	api.Get("/disruptions/:disruptionID", cfg.Disruptions.Get)
	api.Patch("/disruptions/:disruptionID/resolve", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Disruptions.Resolve)
	api.Get("/disruptions/:disruptionID/resolutions", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Disruptions.ListResolutions)

	api.Post("/admin/redeem-code", cfg.AuthMiddleware.Handle, cfg.Admin.RedeemCode)
	api.Get("/notifications", cfg.AuthMiddleware.Handle, cfg.Notifications.List)

	uploads := api.Group("/upload", cfg.AuthMiddleware.Handle)
	uploads.Post("/disruption-image", cfg.Uploads.DisruptionImage)
	uploads.Post("/resolution-image", cfg.Uploads.ResolutionImage)
}
