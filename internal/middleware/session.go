package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
	"github.com/finance-tracker/finance_tracker/internal/auth"
)

const (
	CodeMissingToken = "MissingToken"
	CodeInvalidToken = "InvalidToken"

	claimsKey = "session_claims"
)

// SessionGuard admits requests carrying a valid bearer token and stores the
// verified claims for downstream handlers.
func SessionGuard(tokens *auth.TokenService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if len(authz) < len("Bearer ") || !strings.EqualFold(authz[:len("Bearer ")], "bearer ") {
			return apperr.Unauthorized(CodeMissingToken)
		}
		raw := strings.TrimSpace(authz[len("Bearer "):])
		if raw == "" {
			return apperr.Unauthorized(CodeMissingToken)
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			logger.Debug("session token rejected",
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			return apperr.Unauthorized(CodeInvalidToken).Wrap(err)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by SessionGuard.
func ClaimsFrom(c *fiber.Ctx) (auth.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(auth.Claims)
	return claims, ok
}
