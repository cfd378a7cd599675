package mocks

import (
	"context"

	"github.com/scoot-me/scootme/internal/domain"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	SaveFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockScooterRepository is a mock implementation of ports.ScooterRepository
type MockScooterRepository struct {
	SaveFunc         func(ctx context.Context, s *domain.Scooter) error
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Scooter, error)
	FindAllFunc      func(ctx context.Context, filter map[string]interface{}) ([]domain.Scooter, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.ScooterStatus) error
	ReserveFunc      func(ctx context.Context, id, userID string) (bool, error)
	ReleaseFunc      func(ctx context.Context, id string) error
	AttachTripFunc   func(ctx context.Context, id, tripID string) error
}

func (m *MockScooterRepository) Save(ctx context.Context, s *domain.Scooter) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return nil
}

func (m *MockScooterRepository) FindByID(ctx context.Context, id string) (*domain.Scooter, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockScooterRepository) FindAll(ctx context.Context, filter map[string]interface{}) ([]domain.Scooter, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockScooterRepository) UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockScooterRepository) Reserve(ctx context.Context, id, userID string) (bool, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, id, userID)
	}
	return true, nil
}

func (m *MockScooterRepository) Release(ctx context.Context, id string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, id)
	}
	return nil
}

func (m *MockScooterRepository) AttachTrip(ctx context.Context, id, tripID string) error {
	if m.AttachTripFunc != nil {
		return m.AttachTripFunc(ctx, id, tripID)
	}
	return nil
}

// MockTripRepository is a mock implementation of ports.TripRepository
type MockTripRepository struct {
	SaveFunc         func(ctx context.Context, trip *domain.Trip) error
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Trip, error)
	FindByUserIDFunc func(ctx context.Context, userID string) ([]domain.Trip, error)
	UpdateFunc       func(ctx context.Context, trip *domain.Trip) error
}

func (m *MockTripRepository) Save(ctx context.Context, trip *domain.Trip) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, trip)
	}
	return nil
}

func (m *MockTripRepository) FindByID(ctx context.Context, id string) (*domain.Trip, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTripRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Trip, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, trip)
	}
	return nil
}

// MockPaymentRepository is a mock implementation of ports.PaymentRepository
type MockPaymentRepository struct {
	SaveFunc              func(ctx context.Context, p *domain.Payment) error
	FindByIDFunc          func(ctx context.Context, id string) (*domain.Payment, error)
	FindByMerchantRefFunc func(ctx context.Context, merchantRefNum string) (*domain.Payment, error)
	FindByTripIDFunc      func(ctx context.Context, tripID string) (*domain.Payment, error)
	UpdateFunc            func(ctx context.Context, p *domain.Payment) error
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	return nil
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPaymentRepository) FindByMerchantRef(ctx context.Context, merchantRefNum string) (*domain.Payment, error) {
	if m.FindByMerchantRefFunc != nil {
		return m.FindByMerchantRefFunc(ctx, merchantRefNum)
	}
	return nil, nil
}

func (m *MockPaymentRepository) FindByTripID(ctx context.Context, tripID string) (*domain.Payment, error) {
	if m.FindByTripIDFunc != nil {
		return m.FindByTripIDFunc(ctx, tripID)
	}
	return nil, nil
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

// MockReviewRepository is a mock implementation of ports.ReviewRepository
type MockReviewRepository struct {
	SaveFunc         func(ctx context.Context, r *domain.Review) error
	FindByTripIDFunc func(ctx context.Context, tripID string) ([]domain.Review, error)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *domain.Review) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *MockReviewRepository) FindByTripID(ctx context.Context, tripID string) ([]domain.Review, error) {
	if m.FindByTripIDFunc != nil {
		return m.FindByTripIDFunc(ctx, tripID)
	}
	return nil, nil
}
