package payment

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// fakeProvider lets tests drive the gateway without HTTP.
type fakeProvider struct {
	chargeFunc func(ctx context.Context, p *domain.Payment) error
	verifyFunc func(cb domain.GatewayCallback) bool
}

func (f *fakeProvider) Method() domain.PaymentMethod { return domain.PaymentMethodFawry }

func (f *fakeProvider) Charge(ctx context.Context, p *domain.Payment) error {
	if f.chargeFunc != nil {
		return f.chargeFunc(ctx, p)
	}
	p.ReferenceNumber = "fawry-ref-1"
	p.PaymentURL = "https://pay.example/123"
	return nil
}

func (f *fakeProvider) VerifyCallback(cb domain.GatewayCallback) bool {
	if f.verifyFunc != nil {
		return f.verifyFunc(cb)
	}
	return true
}

func completedTrip() *domain.Trip {
	return &domain.Trip{
		ID:            "trip-1",
		UserID:        "user-1",
		ScooterID:     "sc-1",
		Status:        domain.TripStatusCompleted,
		Fare:          domain.Fare{Amount: 12.5, Currency: "EGP"},
		PaymentStatus: domain.PaymentStatePending,
	}
}

func TestCreate_AmountComesFromTripFare(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var saved *domain.Payment

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return completedTrip(), nil
		},
	}
	mockPayments := &mocks.MockPaymentRepository{
		SaveFunc: func(ctx context.Context, p *domain.Payment) error {
			saved = p
			return nil
		},
	}

	service := NewService(mockPayments, mockTrips, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	// Act
	p, err := service.Create(ctx, "user-1", "trip-1")

	// Assert
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Amount.Value != 12.5 {
		t.Errorf("amount = %v, want the trip fare 12.5", p.Amount.Value)
	}
	if p.Status != domain.PaymentStatusPending {
		t.Errorf("status = %s, want PENDING", p.Status)
	}
	if p.MerchantRefNum == "" {
		t.Error("expected a merchant reference number")
	}
	if p.ReferenceNumber != "fawry-ref-1" {
		t.Errorf("reference number = %s, want gateway value", p.ReferenceNumber)
	}
	if saved == nil {
		t.Fatal("expected the pending row to be persisted before the charge")
	}
}

func TestCreate_WrongOwner(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			trip := completedTrip()
			trip.UserID = "someone-else"
			return trip, nil
		},
	}

	service := NewService(&mocks.MockPaymentRepository{}, mockTrips, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	_, err := service.Create(context.Background(), "user-1", "trip-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Create() error = %v, want ErrForbidden", err)
	}
}

func TestCreate_TripNotCompleted(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			trip := completedTrip()
			trip.Status = domain.TripStatusOngoing
			return trip, nil
		},
	}

	service := NewService(&mocks.MockPaymentRepository{}, mockTrips, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	_, err := service.Create(context.Background(), "user-1", "trip-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Create() error = %v, want ErrInvalidState", err)
	}
}

func TestCreate_AlreadyPaid(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			trip := completedTrip()
			trip.PaymentStatus = domain.PaymentStateCompleted
			return trip, nil
		},
	}

	service := NewService(&mocks.MockPaymentRepository{}, mockTrips, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	_, err := service.Create(context.Background(), "user-1", "trip-1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestCreate_ReturnsExistingPendingPayment(t *testing.T) {
	existing := &domain.Payment{
		ID:             "pay-1",
		TripID:         "trip-1",
		MerchantRefNum: "ref-1",
		Status:         domain.PaymentStatusPending,
	}

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return completedTrip(), nil
		},
	}
	mockPayments := &mocks.MockPaymentRepository{
		FindByTripIDFunc: func(ctx context.Context, tripID string) (*domain.Payment, error) {
			return existing, nil
		},
		SaveFunc: func(ctx context.Context, p *domain.Payment) error {
			t.Error("no new payment row should be created")
			return nil
		},
	}

	service := NewService(mockPayments, mockTrips, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	p, err := service.Create(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID != "pay-1" {
		t.Errorf("payment ID = %s, want the existing pending row", p.ID)
	}
}

func TestCreate_GatewayFailure(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return completedTrip(), nil
		},
	}

	provider := &fakeProvider{
		chargeFunc: func(ctx context.Context, p *domain.Payment) error {
			return domain.ErrUpstream
		},
	}

	service := NewService(&mocks.MockPaymentRepository{}, mockTrips, &mocks.MockUserRepository{}, provider, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	_, err := service.Create(context.Background(), "user-1", "trip-1")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("Create() error = %v, want ErrUpstream", err)
	}
}

func TestHandleCallback_RejectsBadSignature(t *testing.T) {
	pending := &domain.Payment{
		ID:             "pay-1",
		TripID:         "trip-1",
		MerchantRefNum: "ref-1",
		Status:         domain.PaymentStatusPending,
	}
	updated := false

	mockPayments := &mocks.MockPaymentRepository{
		FindByMerchantRefFunc: func(ctx context.Context, ref string) (*domain.Payment, error) {
			return pending, nil
		},
		UpdateFunc: func(ctx context.Context, p *domain.Payment) error {
			updated = true
			return nil
		},
	}

	provider := &fakeProvider{
		verifyFunc: func(cb domain.GatewayCallback) bool { return false },
	}

	service := NewService(mockPayments, &mocks.MockTripRepository{}, &mocks.MockUserRepository{}, provider, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	_, err := service.HandleCallback(context.Background(), domain.GatewayCallback{
		MerchantRefNumber: "ref-1",
		OrderStatus:       "PAID",
		Signature:         "forged",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("HandleCallback() error = %v, want ErrUnauthorized", err)
	}
	if updated {
		t.Error("a forged callback must not change any state")
	}
	if pending.Status != domain.PaymentStatusPending {
		t.Errorf("status = %s, want untouched PENDING", pending.Status)
	}
}

func TestHandleCallback_Paid(t *testing.T) {
	pending := &domain.Payment{
		ID:             "pay-1",
		UserID:         "user-1",
		TripID:         "trip-1",
		MerchantRefNum: "ref-1",
		Status:         domain.PaymentStatusPending,
	}
	trip := completedTrip()

	mockPayments := &mocks.MockPaymentRepository{
		FindByMerchantRefFunc: func(ctx context.Context, ref string) (*domain.Payment, error) {
			return pending, nil
		},
	}
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return trip, nil
		},
	}

	service := NewService(mockPayments, mockTrips, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	p, err := service.HandleCallback(context.Background(), domain.GatewayCallback{
		MerchantRefNumber: "ref-1",
		ReferenceNumber:   "fawry-999",
		OrderAmount:       12.5,
		OrderStatus:       "PAID",
		Signature:         "valid",
	})
	if err != nil {
		t.Fatalf("HandleCallback() error = %v", err)
	}
	if p.Status != domain.PaymentStatusPaid {
		t.Errorf("status = %s, want PAID", p.Status)
	}
	if p.ReferenceNumber != "fawry-999" {
		t.Errorf("reference = %s, want fawry-999", p.ReferenceNumber)
	}
	if trip.PaymentStatus != domain.PaymentStateCompleted {
		t.Errorf("trip payment status = %s, want COMPLETED", trip.PaymentStatus)
	}
}

func TestHandleCallback_NonPaidStatusFails(t *testing.T) {
	pending := &domain.Payment{
		ID:             "pay-1",
		TripID:         "trip-1",
		MerchantRefNum: "ref-1",
		Status:         domain.PaymentStatusPending,
	}
	trip := completedTrip()

	mockPayments := &mocks.MockPaymentRepository{
		FindByMerchantRefFunc: func(ctx context.Context, ref string) (*domain.Payment, error) {
			return pending, nil
		},
	}
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return trip, nil
		},
	}

	service := NewService(mockPayments, mockTrips, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	p, err := service.HandleCallback(context.Background(), domain.GatewayCallback{
		MerchantRefNumber: "ref-1",
		OrderStatus:       "EXPIRED",
		Signature:         "valid",
	})
	if err != nil {
		t.Fatalf("HandleCallback() error = %v", err)
	}
	if p.Status != domain.PaymentStatusFailed {
		t.Errorf("status = %s, want FAILED for a non-PAID callback", p.Status)
	}
	if trip.PaymentStatus != domain.PaymentStateFailed {
		t.Errorf("trip payment status = %s, want FAILED", trip.PaymentStatus)
	}
}

func TestHandleCallback_ReplayIsIdempotent(t *testing.T) {
	settled := &domain.Payment{
		ID:             "pay-1",
		TripID:         "trip-1",
		MerchantRefNum: "ref-1",
		Status:         domain.PaymentStatusPaid,
	}
	updated := false

	mockPayments := &mocks.MockPaymentRepository{
		FindByMerchantRefFunc: func(ctx context.Context, ref string) (*domain.Payment, error) {
			return settled, nil
		},
		UpdateFunc: func(ctx context.Context, p *domain.Payment) error {
			updated = true
			return nil
		},
	}

	service := NewService(mockPayments, &mocks.MockTripRepository{}, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	p, err := service.HandleCallback(context.Background(), domain.GatewayCallback{
		MerchantRefNumber: "ref-1",
		OrderStatus:       "PAID",
		Signature:         "valid",
	})
	if err != nil {
		t.Fatalf("HandleCallback() error = %v", err)
	}
	if p.Status != domain.PaymentStatusPaid {
		t.Errorf("status = %s, want PAID", p.Status)
	}
	if updated {
		t.Error("replayed callbacks must not rewrite the payment")
	}
}

func TestHandleCallback_UnknownRef(t *testing.T) {
	service := NewService(&mocks.MockPaymentRepository{}, &mocks.MockTripRepository{}, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	_, err := service.HandleCallback(context.Background(), domain.GatewayCallback{
		MerchantRefNumber: "unknown",
		OrderStatus:       "PAID",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("HandleCallback() error = %v, want ErrNotFound", err)
	}
}

func TestVerify(t *testing.T) {
	mockPayments := &mocks.MockPaymentRepository{
		FindByMerchantRefFunc: func(ctx context.Context, ref string) (*domain.Payment, error) {
			if ref == "ref-1" {
				return &domain.Payment{MerchantRefNum: ref, Status: domain.PaymentStatusPaid}, nil
			}
			return nil, nil
		},
	}

	service := NewService(mockPayments, &mocks.MockTripRepository{}, &mocks.MockUserRepository{}, &fakeProvider{}, mocks.NewMockMessageQueue(), &mocks.MockEmailService{}, newTestLogger())

	p, err := service.Verify(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if p.Status != domain.PaymentStatusPaid {
		t.Errorf("status = %s, want PAID", p.Status)
	}

	_, err = service.Verify(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Verify() error = %v, want ErrNotFound", err)
	}
}
