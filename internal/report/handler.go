package report

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
	"github.com/finance-tracker/finance_tracker/internal/middleware"
)

// Handler serves the home summary and windowed reports.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Home returns the caller's all-time summary.
func (h *Handler) Home(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return apperr.Unauthorized(middleware.CodeMissingToken)
	}
	summary, err := h.svc.Summary(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// Report returns the caller's entries for the window named by :type.
func (h *Handler) Report(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return apperr.Unauthorized(middleware.CodeMissingToken)
	}
	rep, err := h.svc.Generate(c.UserContext(), claims.UserID, c.Params("type"))
	if err != nil {
		return err
	}
	return c.JSON(rep)
}
