package payment

import (
	"context"

	"github.com/scoot-me/scootme/internal/domain"
)

// Provider is one payment gateway integration. Charge fills the gateway
// fields on the payment row; VerifyCallback authenticates a webhook payload.
type Provider interface {
	Method() domain.PaymentMethod
	Charge(ctx context.Context, p *domain.Payment) error
	VerifyCallback(cb domain.GatewayCallback) bool
}
