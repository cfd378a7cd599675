package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

// HistoryHandler serves the past-rides screens.
type HistoryHandler struct {
	trips ports.TripService
	log   *zap.Logger
}

func NewHistoryHandler(trips ports.TripService, log *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		trips: trips,
		log:   log,
	}
}

func (h *HistoryHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	trips, err := h.trips.History(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"trips": trips})
}

func (h *HistoryHandler) Details(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	details, err := h.trips.Details(c.Context(), c.Params("tripId"), userID)
	if err != nil {
		return err
	}
	return c.JSON(details)
}

func (h *HistoryHandler) RideDetails(c *fiber.Ctx) error {
	details, err := h.trips.RideDetails(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(details)
}
