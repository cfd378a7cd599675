package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
	"github.com/scoot-me/scootme/pkg/config"
)

// Provider is the transport behind the email service.
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// Service implements ports.EmailService on top of a Provider, rendering HTML
// templates for the transactional mails.
type Service struct {
	cfg       config.EmailConfig
	provider  Provider
	templates map[string]*template.Template
	log       *zap.Logger
}

func NewService(cfg config.EmailConfig, log *zap.Logger) (ports.EmailService, error) {
	s := &Service{
		cfg:       cfg,
		templates: make(map[string]*template.Template),
		log:       log,
	}

	switch cfg.Provider {
	case "sendgrid":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("sendgrid api key is required")
		}
		s.provider = NewSendGridProvider(cfg.APIKey, cfg.From, cfg.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.From, cfg.FromName)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}

	s.loadTemplates()
	return s, nil
}

func (s *Service) loadTemplates() {
	s.templates["welcome"] = template.Must(template.New("welcome").Parse(welcomeTemplate))
	s.templates["password_reset"] = template.Must(template.New("password_reset").Parse(passwordResetTemplate))
	s.templates["trip_receipt"] = template.Must(template.New("trip_receipt").Parse(tripReceiptTemplate))
	s.templates["payment_received"] = template.Must(template.New("payment_received").Parse(paymentReceivedTemplate))
}

func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	if err := s.provider.Send(ctx, to, subject, body, false); err != nil {
		s.log.Error("Failed to send email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Service) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if err := s.provider.Send(ctx, to, subject, htmlBody, true); err != nil {
		s.log.Error("Failed to send HTML email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}
	return nil
}

func (s *Service) SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	data["BaseURL"] = s.cfg.BaseURL

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	subject, ok := data["Subject"].(string)
	if !ok {
		subject = "Notification from ScootMe"
	}

	return s.SendHTML(ctx, to, subject, buf.String())
}

func (s *Service) SendWelcome(ctx context.Context, user *domain.User) error {
	data := map[string]interface{}{
		"Subject":  "Welcome to ScootMe!",
		"UserName": user.FirstName,
		"Email":    user.Email,
	}
	return s.SendTemplate(ctx, user.Email, "welcome", data)
}

// SendPasswordReset mails the temporary password generated by the
// forgot-password flow.
func (s *Service) SendPasswordReset(ctx context.Context, user *domain.User, tempPassword string) error {
	data := map[string]interface{}{
		"Subject":      "Your Temporary Password",
		"UserName":     user.FirstName,
		"TempPassword": tempPassword,
	}
	return s.SendTemplate(ctx, user.Email, "password_reset", data)
}

func (s *Service) SendTripReceipt(ctx context.Context, user *domain.User, summary *domain.TripSummary) error {
	minutes := summary.Duration / 60
	seconds := summary.Duration % 60

	data := map[string]interface{}{
		"Subject":    "Your Trip Receipt",
		"UserName":   user.FirstName,
		"TripID":     summary.TripID,
		"Duration":   fmt.Sprintf("%dm %02ds", minutes, seconds),
		"DistanceKm": fmt.Sprintf("%.2f", summary.Distance/1000),
		"Fare":       fmt.Sprintf("%.2f", summary.Fare.Amount),
		"Currency":   summary.Fare.Currency,
		"StartTime":  summary.StartTime.Format("2006-01-02 15:04"),
		"EndTime":    summary.EndTime.Format("2006-01-02 15:04"),
	}
	return s.SendTemplate(ctx, user.Email, "trip_receipt", data)
}

func (s *Service) SendPaymentReceived(ctx context.Context, user *domain.User, payment *domain.Payment) error {
	data := map[string]interface{}{
		"Subject":         "Payment Received",
		"UserName":        user.FirstName,
		"MerchantRef":     payment.MerchantRefNum,
		"ReferenceNumber": payment.ReferenceNumber,
		"Amount":          fmt.Sprintf("%.2f", payment.Amount.Value),
		"Currency":        payment.Amount.Currency,
		"Method":          string(payment.Method),
		"Date":            time.Now().Format("2006-01-02 15:04"),
	}
	return s.SendTemplate(ctx, user.Email, "payment_received", data)
}
