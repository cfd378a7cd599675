package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type ScooterRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewScooterRepository(db *gorm.DB, log *zap.Logger) ports.ScooterRepository {
	return &ScooterRepository{
		db:  db,
		log: log,
	}
}

func (r *ScooterRepository) Save(ctx context.Context, s *domain.Scooter) error {
	result := r.db.WithContext(ctx).Save(s)
	if result.Error != nil {
		r.log.Error("Failed to save scooter", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *ScooterRepository) FindByID(ctx context.Context, id string) (*domain.Scooter, error) {
	var s domain.Scooter
	result := r.db.WithContext(ctx).First(&s, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &s, nil
}

func (r *ScooterRepository) FindAll(ctx context.Context, filter map[string]interface{}) ([]domain.Scooter, error) {
	var scooters []domain.Scooter
	query := r.db.WithContext(ctx)
	if status, ok := filter["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if number, ok := filter["number"]; ok {
		query = query.Where("number = ?", number)
	}

	result := query.Order("number asc").Find(&scooters)
	if result.Error != nil {
		return nil, result.Error
	}
	return scooters, nil
}

func (r *ScooterRepository) UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.Scooter{}).Where("id = ?", id).Update("status", status)
	return result.Error
}

// Reserve claims an Available scooter with a single conditional UPDATE so two
// concurrent bookings cannot both succeed. RowsAffected == 0 means somebody
// else got there first (or the scooter does not exist).
func (r *ScooterRepository) Reserve(ctx context.Context, id, userID string) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&domain.Scooter{}).
		Where("id = ? AND status = ?", id, domain.ScooterStatusAvailable).
		Updates(map[string]interface{}{
			"status":         domain.ScooterStatusReserved,
			"booked_by":      userID,
			"last_booked_at": now,
		})
	if result.Error != nil {
		r.log.Error("Failed to reserve scooter",
			zap.String("scooter_id", id),
			zap.Error(result.Error),
		)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ScooterRepository) Release(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Scooter{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       domain.ScooterStatusAvailable,
			"booked_by":    nil,
			"current_trip": nil,
		})
	if result.Error != nil {
		r.log.Error("Failed to release scooter",
			zap.String("scooter_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

func (r *ScooterRepository) AttachTrip(ctx context.Context, id, tripID string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Scooter{}).
		Where("id = ?", id).
		Update("current_trip", tripID)
	return result.Error
}
