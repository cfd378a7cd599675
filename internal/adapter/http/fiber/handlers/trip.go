package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type TripHandler struct {
	trips ports.TripService
	log   *zap.Logger
}

func NewTripHandler(trips ports.TripService, log *zap.Logger) *TripHandler {
	return &TripHandler{
		trips: trips,
		log:   log,
	}
}

type DestinationRequest struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
	Name      string   `json:"name"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func (h *TripHandler) ConfirmDestination(c *fiber.Ctx) error {
	var req DestinationRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if req.Latitude == nil || req.Longitude == nil {
		return fmt.Errorf("%w: lat and lng are required", domain.ErrValidation)
	}
	if !validCoords(*req.Latitude, *req.Longitude) {
		return fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}

	trip, err := h.trips.ConfirmDestination(c.Context(), c.Params("tripId"), domain.Location{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Name:      req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"trip": trip})
}

func (h *TripHandler) Start(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	trip, err := h.trips.Start(c.Context(), c.Params("tripId"), userID)
	if err != nil {
		return err
	}

	h.log.Info("Trip started", zap.String("trip_id", trip.ID))
	return c.JSON(fiber.Map{"trip": trip})
}

func (h *TripHandler) UpdateLocation(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if req.Latitude == nil || req.Longitude == nil {
		return fmt.Errorf("%w: lat and lng are required", domain.ErrValidation)
	}
	if !validCoords(*req.Latitude, *req.Longitude) {
		return fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}

	update, err := h.trips.UpdateLocation(c.Context(), c.Params("tripId"), userID, *req.Latitude, *req.Longitude)
	if err != nil {
		return err
	}
	return c.JSON(update)
}

func (h *TripHandler) End(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	summary, err := h.trips.End(c.Context(), c.Params("tripId"), userID)
	if err != nil {
		return err
	}

	h.log.Info("Trip ended",
		zap.String("trip_id", summary.TripID),
		zap.Float64("fare", summary.Fare.Amount),
	)
	return c.JSON(summary)
}

func (h *TripHandler) Get(c *fiber.Ctx) error {
	view, err := h.trips.Get(c.Context(), c.Params("tripId"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}
