package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/auth"
)

// RegisterAuthRoutes wires the public account endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}
