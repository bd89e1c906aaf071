package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a per-student rate limiter. Assessment requests invoke
// a paid generation service, so the assess routes are limited more tightly
// than ordinary reads.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			studentID := fmt.Sprintf("%v", c.Locals("student_id"))
			if studentID == "" || studentID == "<nil>" || studentID == "0" {
				studentID = c.IP()
			}
			return fmt.Sprintf("%s:%s", identifier, studentID)
		},
	})
}
