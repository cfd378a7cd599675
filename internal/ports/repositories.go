package ports

import (
	"context"

	"github.com/scoot-me/scootme/internal/domain"
)

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ScooterRepository interface {
	Save(ctx context.Context, s *domain.Scooter) error
	FindByID(ctx context.Context, id string) (*domain.Scooter, error)
	FindAll(ctx context.Context, filter map[string]interface{}) ([]domain.Scooter, error)
	UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error

	// Reserve flips an Available scooter to Reserved for userID in a single
	// conditional UPDATE. Returns false when the scooter was not Available,
	// so two concurrent bookings cannot both win.
	Reserve(ctx context.Context, id, userID string) (bool, error)

	// Release puts the scooter back to Available and clears the booking
	// columns.
	Release(ctx context.Context, id string) error

	AttachTrip(ctx context.Context, id, tripID string) error
}

type TripRepository interface {
	Save(ctx context.Context, trip *domain.Trip) error
	FindByID(ctx context.Context, id string) (*domain.Trip, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
}

type PaymentRepository interface {
	Save(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	FindByMerchantRef(ctx context.Context, merchantRefNum string) (*domain.Payment, error)
	FindByTripID(ctx context.Context, tripID string) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
}

type ReviewRepository interface {
	Save(ctx context.Context, r *domain.Review) error
	FindByTripID(ctx context.Context, tripID string) ([]domain.Review, error)
}
