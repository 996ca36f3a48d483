package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

func RegisterRoutes(app *fiber.App, h *ProductsHandler, health HealthChecker) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if health != nil {
			if err := health.HealthCheck(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).SendString(err.Error())
			}
		}
		return c.Status(fiber.StatusOK).SendString("ok")
	})

	v1 := app.Group("/api/v1")
	v1.Post("/products", h.CreateProduct)
	v1.Get("/products/:id", h.GetProduct)
	v1.Get("/products", h.ListProducts)
}
