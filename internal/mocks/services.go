package mocks

import (
	"context"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

// MockScooterService is a mock implementation of ports.ScooterService
type MockScooterService struct {
	ListFunc         func(ctx context.Context, status string) ([]domain.Scooter, error)
	GetFunc          func(ctx context.Context, id string) (*domain.Scooter, error)
	VerifyFunc       func(ctx context.Context, id string) (*domain.Scooter, bool, error)
	ReserveFunc      func(ctx context.Context, id, userID string) (*domain.Scooter, error)
	ReleaseFunc      func(ctx context.Context, id string) error
	AttachTripFunc   func(ctx context.Context, id, tripID string) error
	UpdateStatusFunc func(ctx context.Context, id string, status domain.ScooterStatus) error
}

func (m *MockScooterService) List(ctx context.Context, status string) ([]domain.Scooter, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status)
	}
	return nil, nil
}

func (m *MockScooterService) Get(ctx context.Context, id string) (*domain.Scooter, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockScooterService) Verify(ctx context.Context, id string) (*domain.Scooter, bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, id)
	}
	return nil, false, nil
}

func (m *MockScooterService) Reserve(ctx context.Context, id, userID string) (*domain.Scooter, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockScooterService) Release(ctx context.Context, id string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, id)
	}
	return nil
}

func (m *MockScooterService) AttachTrip(ctx context.Context, id, tripID string) error {
	if m.AttachTripFunc != nil {
		return m.AttachTripFunc(ctx, id, tripID)
	}
	return nil
}

func (m *MockScooterService) UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockEmailService is a mock implementation of ports.EmailService
type MockEmailService struct {
	SendFunc                func(ctx context.Context, to, subject, body string) error
	SendHTMLFunc            func(ctx context.Context, to, subject, htmlBody string) error
	SendTemplateFunc        func(ctx context.Context, to, templateName string, data map[string]interface{}) error
	SendWelcomeFunc         func(ctx context.Context, user *domain.User) error
	SendPasswordResetFunc   func(ctx context.Context, user *domain.User, tempPassword string) error
	SendTripReceiptFunc     func(ctx context.Context, user *domain.User, summary *domain.TripSummary) error
	SendPaymentReceivedFunc func(ctx context.Context, user *domain.User, payment *domain.Payment) error
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

func (m *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendHTMLFunc != nil {
		return m.SendHTMLFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

func (m *MockEmailService) SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	if m.SendTemplateFunc != nil {
		return m.SendTemplateFunc(ctx, to, templateName, data)
	}
	return nil
}

func (m *MockEmailService) SendWelcome(ctx context.Context, user *domain.User) error {
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(ctx, user)
	}
	return nil
}

func (m *MockEmailService) SendPasswordReset(ctx context.Context, user *domain.User, tempPassword string) error {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(ctx, user, tempPassword)
	}
	return nil
}

func (m *MockEmailService) SendTripReceipt(ctx context.Context, user *domain.User, summary *domain.TripSummary) error {
	if m.SendTripReceiptFunc != nil {
		return m.SendTripReceiptFunc(ctx, user, summary)
	}
	return nil
}

func (m *MockEmailService) SendPaymentReceived(ctx context.Context, user *domain.User, payment *domain.Payment) error {
	if m.SendPaymentReceivedFunc != nil {
		return m.SendPaymentReceivedFunc(ctx, user, payment)
	}
	return nil
}

// MockRouteClient is a mock implementation of ports.RouteClient
type MockRouteClient struct {
	RouteFunc func(ctx context.Context, from, to domain.Location) (*ports.RouteInfo, error)
}

func (m *MockRouteClient) Route(ctx context.Context, from, to domain.Location) (*ports.RouteInfo, error) {
	if m.RouteFunc != nil {
		return m.RouteFunc(ctx, from, to)
	}
	return &ports.RouteInfo{}, nil
}
