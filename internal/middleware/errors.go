package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
)

// ErrorHandler renders every handler error as {"error": code}. Classified
// errors take their status from the kind; internal causes never reach the
// client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, code := StatusFor(err)
	return c.Status(status).JSON(fiber.Map{"error": code})
}

// StatusFor maps an error to an HTTP status and client-facing code.
func StatusFor(err error) (int, string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindValidation:
			return http.StatusBadRequest, appErr.Code
		case apperr.KindConflict:
			return http.StatusConflict, appErr.Code
		case apperr.KindUnauthorized:
			return http.StatusUnauthorized, appErr.Code
		case apperr.KindNotFound:
			return http.StatusNotFound, appErr.Code
		default:
			return http.StatusInternalServerError, "InternalError"
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= http.StatusInternalServerError {
			return fe.Code, "InternalError"
		}
		return fe.Code, fe.Message
	}
	return http.StatusInternalServerError, "InternalError"
}
