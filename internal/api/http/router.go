package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resolution-service/internal/api/http/handlers"
	"github.com/spec-kit/resolution-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Resolve        *handlers.ResolveHandler
	Tickets        *handlers.TicketHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/resolve", cfg.Resolve.Resolve)
	app.Get("/resolve", cfg.Resolve.Probe)
	app.Post("/resolve/assign", cfg.Resolve.Assign)
	app.Post("/resolve/respond", cfg.Resolve.Respond)
	app.Post("/resolve/escalate", cfg.Resolve.Escalate)

	app.Post("/tickets", cfg.Tickets.Create)
	app.Get("/tickets/:id", cfg.Tickets.Get)

	authGroup := app.Group("/auth")
	authGroup.Post("/agents/login", cfg.Auth.Login)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAgent())
	protected.Put("/agents/availability", cfg.Auth.SetAvailability)
}
