package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Checker-Finance/catalog-api/internal/rate"
)

// RateLimit rejects callers exceeding their token bucket with a 429.
// A nil manager disables limiting.
func RateLimit(m *rate.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m != nil && !m.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(Problem{
				Title:  "Too many requests",
				Detail: "rate limit exceeded, retry later",
			})
		}
		return c.Next()
	}
}
