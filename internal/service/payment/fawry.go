package payment

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/infrastructure/circuitbreaker"
	"github.com/scoot-me/scootme/pkg/config"
)

// FawryProvider charges through the Fawry gateway. Requests and callbacks
// are authenticated with a SHA-256 signature over
// merchantCode + merchantRefNum + amount (two decimals) + securityKey.
type FawryProvider struct {
	merchantCode string
	securityKey  string
	baseURL      string
	http         *circuitbreaker.HTTPClient
	log          *zap.Logger
}

func NewFawryProvider(cfg config.FawryConfig, log *zap.Logger) *FawryProvider {
	return &FawryProvider{
		merchantCode: cfg.MerchantCode,
		securityKey:  cfg.SecurityKey,
		baseURL:      cfg.BaseURL,
		http:         circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("fawry"), log),
		log:          log,
	}
}

func (f *FawryProvider) Method() domain.PaymentMethod {
	return domain.PaymentMethodFawry
}

type fawryChargeRequest struct {
	MerchantCode   string  `json:"merchantCode"`
	MerchantRefNum string  `json:"merchantRefNum"`
	PaymentMethod  string  `json:"paymentMethod"`
	Amount         float64 `json:"amount"`
	CurrencyCode   string  `json:"currencyCode"`
	Description    string  `json:"description"`
	Signature      string  `json:"signature"`
}

type fawryChargeResponse struct {
	ReferenceNumber   string `json:"referenceNumber"`
	MerchantRefNumber string `json:"merchantRefNumber"`
	StatusCode        int    `json:"statusCode"`
	StatusDescription string `json:"statusDescription"`
	PaymentURL        string `json:"paymentURL"`
}

func (f *FawryProvider) Charge(ctx context.Context, p *domain.Payment) error {
	signature := f.sign(p.MerchantRefNum, p.Amount.Value)
	p.SignatureSent = signature

	reqBody, err := json.Marshal(fawryChargeRequest{
		MerchantCode:   f.merchantCode,
		MerchantRefNum: p.MerchantRefNum,
		PaymentMethod:  "PAYATFAWRY",
		Amount:         p.Amount.Value,
		CurrencyCode:   p.Amount.Currency,
		Description:    "Scooter trip fare",
		Signature:      signature,
	})
	if err != nil {
		return err
	}

	resp, err := f.http.Post(ctx, f.baseURL, "application/json", reqBody)
	if err != nil {
		return fmt.Errorf("%w: fawry charge failed: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read fawry response: %v", domain.ErrUpstream, err)
	}

	var parsed fawryChargeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("%w: decode fawry response: %v", domain.ErrUpstream, err)
	}

	if parsed.StatusCode != 200 {
		f.log.Warn("Fawry rejected charge",
			zap.String("merchant_ref", p.MerchantRefNum),
			zap.Int("status_code", parsed.StatusCode),
			zap.String("description", parsed.StatusDescription),
		)
		return fmt.Errorf("%w: fawry status %d: %s", domain.ErrUpstream, parsed.StatusCode, parsed.StatusDescription)
	}

	p.ReferenceNumber = parsed.ReferenceNumber
	p.PaymentURL = parsed.PaymentURL
	p.GatewayStatus = parsed.StatusDescription
	return nil
}

// VerifyCallback recomputes the signature from the callback fields and
// compares it in constant time.
func (f *FawryProvider) VerifyCallback(cb domain.GatewayCallback) bool {
	expected := f.sign(cb.MerchantRefNumber, cb.OrderAmount)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(cb.Signature)) == 1
}

func (f *FawryProvider) sign(merchantRefNum string, amount float64) string {
	payload := f.merchantCode + merchantRefNum + fmt.Sprintf("%.2f", amount) + f.securityKey
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
