package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
)

// Handler exposes register and login endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Register creates an account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("InvalidPayload").Wrap(err)
	}
	if _, err := h.svc.Register(c.UserContext(), RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

// Login validates credentials and returns a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("InvalidPayload").Wrap(err)
	}
	res, err := h.svc.Login(c.UserContext(), LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(loginResponse{Token: res.Token, Name: res.Name})
}
