package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type PaymentHandler struct {
	payments ports.PaymentService
	log      *zap.Logger
}

func NewPaymentHandler(payments ports.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		log:      log,
	}
}

type CreatePaymentRequest struct {
	TripID string `json:"trip_id"`
}

// Create opens a charge for a completed trip. The fare amount comes from the
// trip record, never from this request.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if req.TripID == "" {
		return fmt.Errorf("%w: trip_id is required", domain.ErrValidation)
	}

	payment, err := h.payments.Create(c.Context(), userID, req.TripID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment})
}

// Callback is the gateway webhook. It is unauthenticated; the service trusts
// nothing until the payload signature checks out.
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	var cb domain.GatewayCallback
	if err := c.BodyParser(&cb); err != nil {
		return fmt.Errorf("%w: invalid callback body", domain.ErrValidation)
	}
	if cb.MerchantRefNumber == "" {
		return fmt.Errorf("%w: merchantRefNumber is required", domain.ErrValidation)
	}

	payment, err := h.payments.HandleCallback(c.Context(), cb)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"merchant_ref_num": payment.MerchantRefNum,
		"status":           payment.Status,
	})
}

// Verify is polled by the SPA while it waits for the gateway to settle.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	payment, err := h.payments.Verify(c.Context(), c.Params("merchantRefNum"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"payment": payment})
}
