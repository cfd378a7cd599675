package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type ReviewRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReviewRepository(db *gorm.DB, log *zap.Logger) ports.ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
	}
}

func (r *ReviewRepository) Save(ctx context.Context, review *domain.Review) error {
	result := r.db.WithContext(ctx).Save(review)
	if result.Error != nil {
		r.log.Error("Failed to save review",
			zap.String("trip_id", review.TripID),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

func (r *ReviewRepository) FindByTripID(ctx context.Context, tripID string) ([]domain.Review, error) {
	var reviews []domain.Review
	result := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at desc").
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return reviews, nil
}
