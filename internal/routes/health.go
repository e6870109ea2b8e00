package routes

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/infra"
)

// RegisterHealthRoutes adds a readiness endpoint reporting backend status.
func RegisterHealthRoutes(app *fiber.App, h infra.Health) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		status, healthy := h.Check(c.UserContext())
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
