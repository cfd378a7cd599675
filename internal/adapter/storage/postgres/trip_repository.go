package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type TripRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTripRepository(db *gorm.DB, log *zap.Logger) ports.TripRepository {
	return &TripRepository{
		db:  db,
		log: log,
	}
}

func (r *TripRepository) Save(ctx context.Context, trip *domain.Trip) error {
	result := r.db.WithContext(ctx).Save(trip)
	if result.Error != nil {
		r.log.Error("Failed to save trip",
			zap.String("trip_id", trip.ID),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, id string) (*domain.Trip, error) {
	var trip domain.Trip
	result := r.db.WithContext(ctx).First(&trip, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &trip, nil
}

func (r *TripRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Trip, error) {
	var trips []domain.Trip
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time desc").
		Find(&trips)
	if result.Error != nil {
		return nil, result.Error
	}
	return trips, nil
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	result := r.db.WithContext(ctx).Save(trip)
	if result.Error != nil {
		r.log.Error("Failed to update trip",
			zap.String("trip_id", trip.ID),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}
