package domain

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodFawry  PaymentMethod = "FAWRY"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency" gorm:"default:EGP"`
}

// Payment is the local record of a gateway charge. It is created PENDING
// before the gateway is called and settled exactly once by the webhook
// callback, matched by MerchantRefNum.
type Payment struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"index"`
	TripID string `json:"trip_id" gorm:"index"`

	// MerchantRefNum is our unique reference correlating this row with the
	// gateway's record.
	MerchantRefNum string `json:"merchant_ref_num" gorm:"uniqueIndex"`

	// ReferenceNumber is the gateway's own transaction id, learned from the
	// callback.
	ReferenceNumber string `json:"reference_number,omitempty" gorm:"index"`

	Amount Amount        `json:"amount" gorm:"embedded;embeddedPrefix:amount_"`
	Method PaymentMethod `json:"method"`
	Status PaymentStatus `json:"status" gorm:"index"`

	PaymentURL    string `json:"payment_url,omitempty"`
	GatewayStatus string `json:"gateway_status,omitempty"`

	SignatureSent     string `json:"-"`
	SignatureReceived string `json:"-"`

	CallbackData map[string]any `json:"-" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settled reports whether the payment reached a terminal state.
func (p *Payment) Settled() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusFailed
}
