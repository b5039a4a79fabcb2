package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/handler"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Request      *handler.RequestHandler
	Vote         *handler.VoteHandler
	Driver       *handler.DriverHandler
	Coordinator  *handler.CoordinatorHandler
	Notification *handler.NotificationHandler
	Health       *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health and metrics (before API group, no identity needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// Rate limit tiers
	readLimit := middleware.NewReadRateLimiter()
	createLimit := middleware.NewCreateRateLimiter()
	voteLimit := middleware.NewVoteRateLimiter()
	respondLimit := middleware.NewRespondRateLimiter()
	decisionLimit := middleware.NewDecisionRateLimiter()

	// API routes, all behind the trusted identity headers
	api := app.Group("/api", middleware.NewActorContext())

	// Request routes
	api.Post("/requests", h.Request.Create, createLimit.Handler())
	api.Get("/requests", h.Request.List, readLimit.Handler())
	api.Get("/requests/:requestId", h.Request.Get, readLimit.Handler())

	// Vote routes
	api.Post("/requests/:requestId/votes", h.Vote.Cast, voteLimit.Handler())

	// Driver solicitation routes
	api.Post("/requests/:requestId/respond", h.Driver.Respond, respondLimit.Handler())

	// Coordinator decision routes
	coord := api.Group("", middleware.RequireRole("coordinator"))
	coord.Post("/requests/:requestId/approve", h.Coordinator.Approve, decisionLimit.Handler())
	coord.Post("/requests/:requestId/reject", h.Coordinator.Reject, decisionLimit.Handler())

	// Notification routes
	api.Get("/notifications", h.Notification.Inbox, readLimit.Handler())
	api.Post("/notifications/:notificationId/read", h.Notification.MarkRead, readLimit.Handler())
}
