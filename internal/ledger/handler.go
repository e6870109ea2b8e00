package ledger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
	"github.com/finance-tracker/finance_tracker/internal/middleware"
)

const CodeInvalidDate = "InvalidDate"

// Handler exposes entry creation and listing for the authenticated user.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type entryRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Category string           `json:"category"`
	Date     string           `json:"date"`
}

// Create records an entry of kind for the caller.
func (h *Handler) Create(kind Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return apperr.Unauthorized(middleware.CodeMissingToken)
		}
		var req entryRequest
		if err := c.BodyParser(&req); err != nil {
			return apperr.Validation("InvalidPayload").Wrap(err)
		}
		if req.Amount == nil {
			return apperr.Validation(CodeInvalidAmount)
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return err
		}

		entry, err := h.svc.Record(c.UserContext(), RecordInput{
			OwnerID:  claims.UserID,
			Kind:     kind,
			Amount:   *req.Amount,
			Category: req.Category,
			Date:     date,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(entry)
	}
}

// List returns the caller's entries of kind, optionally bounded by ?since=.
func (h *Handler) List(kind Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return apperr.Unauthorized(middleware.CodeMissingToken)
		}
		since, err := parseDate(c.Query("since"))
		if err != nil {
			return err
		}
		entries, err := h.svc.List(c.UserContext(), kind, claims.UserID, since)
		if err != nil {
			return err
		}
		return c.JSON(entries)
	}
}

// parseDate accepts RFC 3339 timestamps or plain calendar dates. Empty input
// yields the zero time.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, apperr.Validation(CodeInvalidDate).Wrap(err)
	}
	return t, nil
}
