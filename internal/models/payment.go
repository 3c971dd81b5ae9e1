package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records one successful external card charge and the coins it
// bought. Rows are append-only; the unique idempotency key makes the
// credit exactly-once even if the charge signal is delivered twice.
type Payment struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	IdempotencyKey string          `gorm:"size:36;uniqueIndex;not null" json:"idempotency_key"`
	Email          string          `gorm:"size:255;not null;index" json:"email"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Coin           int64           `gorm:"not null" json:"coin"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TableName specifies the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}

// CoinPackage is one purchasable coin bundle on the price list.
type CoinPackage struct {
	Coin  int64           `json:"coin"`
	Price decimal.Decimal `json:"price"`
}

// RecordPaymentRequest is the charge-succeeded signal from the payment
// provider integration.
type RecordPaymentRequest struct {
	Coin           int64           `json:"coin" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	IdempotencyKey string          `json:"idempotency_key"`
}
