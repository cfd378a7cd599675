package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type UserHandler struct {
	users ports.UserService
	log   *zap.Logger
}

func NewUserHandler(users ports.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		log:   log,
	}
}

// SettingsRequest uses pointers so a missing toggle is distinguishable from
// false; the client must always send all three.
type SettingsRequest struct {
	PushNotifications  *bool `json:"push_notifications"`
	EmailNotifications *bool `json:"email_notifications"`
	RideReminders      *bool `json:"ride_reminders"`
}

func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if req.PushNotifications == nil || req.EmailNotifications == nil || req.RideReminders == nil {
		return fmt.Errorf("%w: all three settings are required", domain.ErrValidation)
	}

	user, err := h.users.UpdateSettings(c.Context(), userID, domain.Settings{
		PushNotifications:  *req.PushNotifications,
		EmailNotifications: *req.EmailNotifications,
		RideReminders:      *req.RideReminders,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"settings": user.Settings})
}
