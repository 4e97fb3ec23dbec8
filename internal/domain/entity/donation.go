package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de donación.
const (
	DonationStatusPending    = "pending"
	DonationStatusProcessing = "processing"
	DonationStatusCompleted  = "completed"
	DonationStatusFailed     = "failed"
	DonationStatusRefunded   = "refunded"
)

// Medios de pago de una donación.
const (
	PaymentDirectTransfer = "direct_transfer"
	PaymentCourt          = "court"
	PaymentDigitalWallet  = "digital_wallet"
	PaymentBankGateway    = "bank_gateway"
	PaymentProductSale    = "product_sale"
)

// Donation aporte directo de un donante a una organización o necesidad.
type Donation struct {
	ID            string
	Amount        decimal.Decimal
	PaymentMethod string
	Status        string
	DonorID       string
	CharityID     string
	NeedID        string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}
