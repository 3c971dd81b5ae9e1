package models

import (
	"time"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// Withdrawal is a worker's request to cash coins out. The coins are debited
// from the worker's balance at request time and held against the request;
// rejection returns the hold, approval marks the external payout as done.
type Withdrawal struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Reference      string           `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	WorkerEmail    string           `gorm:"size:255;not null;index" json:"worker_email"`
	WorkerName     string           `gorm:"size:255" json:"worker_name"`
	WithdrawalCoin int64            `gorm:"not null" json:"withdrawal_coin"`
	PaymentSystem  string           `gorm:"size:50" json:"payment_system"`
	AccountNumber  string           `gorm:"size:100" json:"account_number"`
	Status         WithdrawalStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName specifies the table name for Withdrawal model
func (Withdrawal) TableName() string {
	return "withdrawals"
}

// WithdrawalRequest is the worker payload for requesting a payout.
type WithdrawalRequest struct {
	WithdrawalCoin int64  `json:"withdrawal_coin" binding:"required"`
	PaymentSystem  string `json:"payment_system" binding:"required"`
	AccountNumber  string `json:"account_number" binding:"required"`
}
