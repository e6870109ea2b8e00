package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
)

// Audit emits one structured log line per request. Client errors log at warn,
// server errors at error.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Duration("duration", time.Since(start)),
		}
		if requestID := RequestIDFrom(c); requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}
		if claims, ok := ClaimsFrom(c); ok {
			attrs = append(attrs, slog.String("user_id", claims.UserID))
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
			if apperr.KindOf(err) == apperr.KindInternal && !isClientFiberError(err) {
				logger.Error("request failed", attrs...)
			} else {
				logger.Warn("request rejected", attrs...)
			}
			return err
		}

		attrs = append(attrs, slog.Int("status", c.Response().StatusCode()))
		logger.Info("request completed", attrs...)
		return nil
	}
}

func isClientFiberError(err error) bool {
	var fe *fiber.Error
	return errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError
}
