package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/essaymark/essaymark-api/internal/config"
	"github.com/essaymark/essaymark-api/internal/handler"
	"github.com/essaymark/essaymark-api/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssessmentHandler *handler.AssessmentHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AssessmentHandler != nil {
		assessGroup := app.Group("/api/v2/assess", jwtMiddleware,
			middleware.RateLimit("assess", cfg.AssessRateLimit, time.Minute))
		deps.AssessmentHandler.Register(assessGroup)
	}
}
