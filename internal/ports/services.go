package ports

import (
	"context"
	"time"

	"github.com/scoot-me/scootme/internal/domain"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

type AuthService interface {
	Register(ctx context.Context, user *domain.User) (string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
}

type ScooterService interface {
	List(ctx context.Context, status string) ([]domain.Scooter, error)
	Get(ctx context.Context, id string) (*domain.Scooter, error)

	// Verify backs the QR-scan flow: it reports whether the scooter exists
	// and can be booked.
	Verify(ctx context.Context, id string) (*domain.Scooter, bool, error)

	// Reserve atomically claims an Available scooter for userID.
	Reserve(ctx context.Context, id, userID string) (*domain.Scooter, error)

	Release(ctx context.Context, id string) error
	AttachTrip(ctx context.Context, id, tripID string) error
	UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error
}

type TripService interface {
	Book(ctx context.Context, scooterID, userID string) (*domain.Trip, error)
	ConfirmDestination(ctx context.Context, tripID string, dest domain.Location) (*domain.Trip, error)
	Start(ctx context.Context, tripID, userID string) (*domain.Trip, error)
	UpdateLocation(ctx context.Context, tripID, userID string, lat, lng float64) (*domain.LiveUpdate, error)
	End(ctx context.Context, tripID, userID string) (*domain.TripSummary, error)
	Get(ctx context.Context, tripID string) (*domain.TripView, error)
	History(ctx context.Context, userID string) ([]domain.Trip, error)
	Details(ctx context.Context, tripID, userID string) (*domain.TripDetails, error)
	RideDetails(ctx context.Context, tripID string) (*domain.RideDetails, error)
}

type PaymentService interface {
	Create(ctx context.Context, userID, tripID string) (*domain.Payment, error)
	HandleCallback(ctx context.Context, cb domain.GatewayCallback) (*domain.Payment, error)
	Verify(ctx context.Context, merchantRefNum string) (*domain.Payment, error)
}

type UserService interface {
	UpdateSettings(ctx context.Context, userID string, settings domain.Settings) (*domain.User, error)
}

type ReviewService interface {
	Create(ctx context.Context, userID, tripID string, rating int, comment string, issues []domain.ReviewIssue) (*domain.Review, error)
	ListByTrip(ctx context.Context, tripID string) ([]domain.Review, error)
}

type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
	SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error
	SendWelcome(ctx context.Context, user *domain.User) error
	SendPasswordReset(ctx context.Context, user *domain.User, tempPassword string) error
	SendTripReceipt(ctx context.Context, user *domain.User, summary *domain.TripSummary) error
	SendPaymentReceived(ctx context.Context, user *domain.User, payment *domain.Payment) error
}

// RouteInfo is what the routing helper returns for a pair of points.
type RouteInfo struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// RouteClient wraps the external route/ETA service. Implementations must
// return domain.ErrUpstream-wrapped errors when no route comes back.
type RouteClient interface {
	Route(ctx context.Context, from, to domain.Location) (*RouteInfo, error)
}
