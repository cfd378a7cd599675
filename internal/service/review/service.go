package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

var validIssues = map[domain.ReviewIssue]bool{
	domain.IssueBattery:   true,
	domain.IssueBrakes:    true,
	domain.IssueWheels:    true,
	domain.IssueLights:    true,
	domain.IssueQRCode:    true,
	domain.IssueAppIssues: true,
	domain.IssueOther:     true,
}

type Service struct {
	reviews ports.ReviewRepository
	trips   ports.TripRepository
	log     *zap.Logger
}

func NewService(reviews ports.ReviewRepository, trips ports.TripRepository, log *zap.Logger) ports.ReviewService {
	return &Service{
		reviews: reviews,
		trips:   trips,
		log:     log,
	}
}

func (s *Service) Create(ctx context.Context, userID, tripID string, rating int, comment string, issues []domain.ReviewIssue) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if len(comment) > 500 {
		return nil, fmt.Errorf("%w: comment must be at most 500 characters", domain.ErrValidation)
	}
	for _, issue := range issues {
		if !validIssues[issue] {
			return nil, fmt.Errorf("%w: unknown issue %q", domain.ErrValidation, issue)
		}
	}

	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("%w: trip %s", domain.ErrNotFound, tripID)
	}
	if trip.UserID != userID {
		return nil, fmt.Errorf("%w: trip belongs to another rider", domain.ErrForbidden)
	}
	if trip.Status != domain.TripStatusCompleted {
		return nil, fmt.Errorf("%w: only completed trips can be reviewed", domain.ErrInvalidState)
	}

	r := &domain.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		TripID:    tripID,
		Rating:    rating,
		Comment:   comment,
		Issues:    issues,
		CreatedAt: time.Now(),
	}

	if err := s.reviews.Save(ctx, r); err != nil {
		return nil, err
	}

	s.log.Info("Review created",
		zap.String("trip_id", tripID),
		zap.Int("rating", rating),
		zap.Int("issues", len(issues)),
	)
	return r, nil
}

func (s *Service) ListByTrip(ctx context.Context, tripID string) ([]domain.Review, error) {
	return s.reviews.FindByTripID(ctx, tripID)
}
