package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(reviews ports.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		log:     log,
	}
}

type CreateReviewRequest struct {
	Rating  *int                 `json:"rating"`
	Comment string               `json:"comment"`
	Issues  []domain.ReviewIssue `json:"issues"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return fmt.Errorf("%w: not authenticated", domain.ErrUnauthorized)
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if req.Rating == nil {
		return fmt.Errorf("%w: rating is required", domain.ErrValidation)
	}

	review, err := h.reviews.Create(c.Context(), userID, c.Params("tripId"), *req.Rating, req.Comment, req.Issues)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

func (h *ReviewHandler) ListByTrip(c *fiber.Ctx) error {
	reviews, err := h.reviews.ListByTrip(c.Context(), c.Params("tripId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}
