package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/pkg/config"
)

type capturingProvider struct {
	to      string
	subject string
	body    string
	isHTML  bool
	sends   int
}

func (p *capturingProvider) Send(ctx context.Context, to, subject, body string, isHTML bool) error {
	p.to = to
	p.subject = subject
	p.body = body
	p.isHTML = isHTML
	p.sends++
	return nil
}

func newTestService(t *testing.T) (*Service, *capturingProvider) {
	t.Helper()
	svc, err := NewService(config.EmailConfig{
		Provider: "smtp",
		From:     "noreply@scootme.app",
		FromName: "ScootMe",
		SMTPHost: "localhost",
		SMTPPort: 1025,
		BaseURL:  "https://scootme.app",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	s := svc.(*Service)
	provider := &capturingProvider{}
	s.provider = provider
	return s, provider
}

func TestNewService_UnknownProvider(t *testing.T) {
	_, err := NewService(config.EmailConfig{Provider: "carrier-pigeon"}, zap.NewNop())
	if err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestNewService_SendGridRequiresKey(t *testing.T) {
	_, err := NewService(config.EmailConfig{Provider: "sendgrid"}, zap.NewNop())
	if err == nil {
		t.Fatal("expected an error when the sendgrid key is missing")
	}
}

func TestSendWelcome(t *testing.T) {
	svc, provider := newTestService(t)

	user := &domain.User{FirstName: "Nour", Email: "nour@example.com"}
	if err := svc.SendWelcome(context.Background(), user); err != nil {
		t.Fatalf("SendWelcome: %v", err)
	}

	if provider.to != "nour@example.com" {
		t.Errorf("to = %q", provider.to)
	}
	if !provider.isHTML {
		t.Error("expected an HTML email")
	}
	if !strings.Contains(provider.body, "Welcome, Nour!") {
		t.Error("expected the body to greet the user by first name")
	}
	if !strings.Contains(provider.body, "https://scootme.app/scooters") {
		t.Error("expected the base URL to be injected into links")
	}
}

func TestSendPasswordReset(t *testing.T) {
	svc, provider := newTestService(t)

	user := &domain.User{FirstName: "Omar", Email: "omar@example.com"}
	if err := svc.SendPasswordReset(context.Background(), user, "Xk3mP9qRtW2z"); err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}

	if !strings.Contains(provider.body, "Xk3mP9qRtW2z") {
		t.Error("expected the temporary password in the body")
	}
	if provider.subject != "Your Temporary Password" {
		t.Errorf("subject = %q", provider.subject)
	}
}

func TestSendTripReceipt(t *testing.T) {
	svc, provider := newTestService(t)

	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	summary := &domain.TripSummary{
		TripID:    "trip-1",
		Duration:  754, // 12m 34s
		Distance:  2345.0,
		Fare:      domain.Fare{Amount: 11.5, Currency: "EGP"},
		StartTime: start,
		EndTime:   start.Add(754 * time.Second),
	}

	user := &domain.User{FirstName: "Sara", Email: "sara@example.com"}
	if err := svc.SendTripReceipt(context.Background(), user, summary); err != nil {
		t.Fatalf("SendTripReceipt: %v", err)
	}

	for _, want := range []string{"12m 34s", "2.35 km", "EGP 11.50", "2026-03-14 09:30"} {
		if !strings.Contains(provider.body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}

func TestSendPaymentReceived(t *testing.T) {
	svc, provider := newTestService(t)

	p := &domain.Payment{
		MerchantRefNum:  "ref-42",
		ReferenceNumber: "FWRY-999",
		Amount:          domain.Amount{Value: 6.5, Currency: "EGP"},
		Method:          domain.PaymentMethodFawry,
	}

	user := &domain.User{FirstName: "Aya", Email: "aya@example.com"}
	if err := svc.SendPaymentReceived(context.Background(), user, p); err != nil {
		t.Fatalf("SendPaymentReceived: %v", err)
	}

	for _, want := range []string{"ref-42", "FWRY-999", "EGP 6.50"} {
		if !strings.Contains(provider.body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}

func TestSendTemplate_UnknownTemplate(t *testing.T) {
	svc, provider := newTestService(t)

	err := svc.SendTemplate(context.Background(), "x@example.com", "nonexistent", nil)
	if err == nil {
		t.Fatal("expected an error for a missing template")
	}
	if provider.sends != 0 {
		t.Error("expected nothing to be sent")
	}
}
