package routes

import (
	"time"

	"github.com/complaintbox/backend/internal/config"
	"github.com/complaintbox/backend/internal/handlers"
	"github.com/complaintbox/backend/internal/middleware"
	"github.com/complaintbox/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	complaintHandler *handlers.ComplaintHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	pagesHandler *handlers.PagesHandler,
) {
	// Public pages; the complaint form sits behind the access gate
	app.Get("/", pagesHandler.Home)
	app.Get("/complaint", middleware.ComplaintGate(cfg), pagesHandler.ComplaintForm)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/roster", pagesHandler.Roster)

	// Auth — stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Get("/session", middleware.JWTProtected(cfg), authHandler.Session)
	auth.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public intake; the handler enforces the gate token and the
	// submission-specific sliding window itself
	api.Post("/complaints", complaintHandler.Submit)

	// Admin moderation (session required; delete needs super-admin)
	api.Get("/complaints", middleware.JWTProtected(cfg), complaintHandler.List)
	api.Get("/complaints/:id", middleware.JWTProtected(cfg), complaintHandler.Get)
	api.Patch("/complaints/:id", middleware.JWTProtected(cfg), complaintHandler.MarkRead)
	api.Delete("/complaints/:id",
		middleware.JWTProtected(cfg),
		middleware.RequireRole(models.RoleSuperAdmin),
		complaintHandler.Delete)
}
