package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/essaymark/essaymark-api/internal/config"
	"github.com/essaymark/essaymark-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	// GradingMode is "full" when a generation provider is configured,
	// "fallback-only" otherwise. The service grades either way.
	GradingMode string `json:"grading_mode"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := "fallback-only"
		if cfg.GenerationConfigured() {
			mode = "full"
		}

		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			GradingMode: mode,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
