package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type AuthHandler struct {
	service ports.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service ports.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StudentID string `json:"student_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}

	user := domain.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  req.Password,
		StudentID: req.StudentID,
	}

	token, err := h.service.Register(c.Context(), &user)
	if err != nil {
		// The mobile client treats a duplicate email as a validation failure,
		// so it comes back as 400 rather than 409.
		if errors.Is(err, domain.ErrConflict) {
			return fiber.NewError(fiber.StatusBadRequest, "email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Profile(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	token, user, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("Login failed", zap.String("email", req.Email))
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Profile(),
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*domain.User)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}
	return c.JSON(user.Profile())
}

// ForgotPassword always answers 200 so the endpoint cannot be used to probe
// which emails have accounts.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	if err := h.service.ForgotPassword(c.Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "If that email is registered, a temporary password is on its way",
	})
}
