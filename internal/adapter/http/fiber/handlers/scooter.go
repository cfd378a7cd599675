package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type ScooterHandler struct {
	scooters ports.ScooterService
	trips    ports.TripService
	log      *zap.Logger
}

func NewScooterHandler(scooters ports.ScooterService, trips ports.TripService, log *zap.Logger) *ScooterHandler {
	return &ScooterHandler{
		scooters: scooters,
		trips:    trips,
		log:      log,
	}
}

// List serves the fleet, optionally filtered by ?status=.
func (h *ScooterHandler) List(c *fiber.Ctx) error {
	scooters, err := h.scooters.List(c.Context(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"scooters": scooters})
}

// Verify backs the QR-scan screen: does this scooter exist, and can it be
// booked right now?
func (h *ScooterHandler) Verify(c *fiber.Ctx) error {
	scooter, bookable, err := h.scooters.Verify(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"scooter":  scooter,
		"bookable": bookable,
	})
}

// Book reserves the scooter and opens a trip in one shot.
func (h *ScooterHandler) Book(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	trip, err := h.trips.Book(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}

	h.log.Info("Scooter booked",
		zap.String("scooter_id", c.Params("id")),
		zap.String("trip_id", trip.ID),
	)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"trip": trip})
}
