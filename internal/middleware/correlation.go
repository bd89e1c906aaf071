package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const correlationLocal = "correlation_id"

// CorrelationID middleware ensures every request carries a correlation
// identifier so a submission can be traced through the pipeline's logs.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		incoming := strings.TrimSpace(c.Get("X-Correlation-ID"))
		if incoming == "" {
			incoming = strings.TrimSpace(c.Get("X-Request-ID"))
		}
		if incoming == "" {
			incoming = uuid.NewString()
		}

		c.Locals(correlationLocal, incoming)
		c.Set("X-Correlation-ID", incoming)

		return c.Next()
	}
}

// GetCorrelationID returns the request's correlation identifier, if set.
func GetCorrelationID(c *fiber.Ctx) string {
	if v := c.Locals(correlationLocal); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
