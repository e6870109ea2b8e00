package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/report"
)

// RegisterReportRoutes wires the home summary and windowed reports.
func RegisterReportRoutes(r fiber.Router, h *report.Handler) {
	r.Get("/home", h.Home)
	r.Get("/report/:type", h.Report)
}
