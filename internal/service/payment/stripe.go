package payment

import (
	"context"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/pkg/config"
)

// StripeProvider charges cards through Stripe PaymentIntents. It is the
// card-payment alternative to the Fawry cash flow.
type StripeProvider struct {
	currency string
	log      *zap.Logger
}

func NewStripeProvider(cfg config.StripeConfig, log *zap.Logger) *StripeProvider {
	stripe.Key = cfg.SecretKey

	currency := cfg.Currency
	if currency == "" {
		currency = "egp"
	}
	return &StripeProvider{
		currency: currency,
		log:      log,
	}
}

func (s *StripeProvider) Method() domain.PaymentMethod {
	return domain.PaymentMethodCard
}

func (s *StripeProvider) Charge(ctx context.Context, p *domain.Payment) error {
	// Stripe wants the amount in the smallest currency unit.
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(p.Amount.Value * 100))),
		Currency: stripe.String(s.currency),
	}
	params.AddMetadata("merchant_ref_num", p.MerchantRefNum)
	params.AddMetadata("trip_id", p.TripID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return fmt.Errorf("%w: stripe charge failed: %v", domain.ErrUpstream, err)
	}

	p.ReferenceNumber = pi.ID
	p.GatewayStatus = string(pi.Status)
	p.PaymentURL = pi.ClientSecret
	return nil
}

// VerifyCallback always fails: card settlement is confirmed client-side via
// the PaymentIntent, not through this webhook.
func (s *StripeProvider) VerifyCallback(cb domain.GatewayCallback) bool {
	s.log.Warn("Received gateway callback for a card payment",
		zap.String("merchant_ref", cb.MerchantRefNumber),
	)
	return false
}
