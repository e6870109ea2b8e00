package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/ledger"
)

// RegisterLedgerRoutes wires entry creation and listing. idempotent guards
// the POST endpoints.
func RegisterLedgerRoutes(r fiber.Router, h *ledger.Handler, idempotent fiber.Handler) {
	r.Post("/incomes", idempotent, h.Create(ledger.KindIncome))
	r.Get("/incomes", h.List(ledger.KindIncome))
	r.Post("/expenses", idempotent, h.Create(ledger.KindExpense))
	r.Get("/expenses", h.List(ledger.KindExpense))
}
