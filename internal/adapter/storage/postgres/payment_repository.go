package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type PaymentRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPaymentRepository(db *gorm.DB, log *zap.Logger) ports.PaymentRepository {
	return &PaymentRepository{
		db:  db,
		log: log,
	}
}

func (r *PaymentRepository) Save(ctx context.Context, p *domain.Payment) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		r.log.Error("Failed to save payment",
			zap.String("merchant_ref", p.MerchantRefNum),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	var p domain.Payment
	result := r.db.WithContext(ctx).First(&p, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *PaymentRepository) FindByMerchantRef(ctx context.Context, merchantRefNum string) (*domain.Payment, error) {
	var p domain.Payment
	result := r.db.WithContext(ctx).First(&p, "merchant_ref_num = ?", merchantRefNum)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *PaymentRepository) FindByTripID(ctx context.Context, tripID string) (*domain.Payment, error) {
	var p domain.Payment
	result := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at desc").
		First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		r.log.Error("Failed to update payment",
			zap.String("merchant_ref", p.MerchantRefNum),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}
