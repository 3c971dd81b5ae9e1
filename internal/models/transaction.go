package models

import (
	"time"
)

type CoinTransactionType string

const (
	TxTypeEscrow           CoinTransactionType = "task_escrow"
	TxTypeRefund           CoinTransactionType = "task_refund"
	TxTypeEarning          CoinTransactionType = "submission_earning"
	TxTypeWithdrawalHold   CoinTransactionType = "withdrawal_hold"
	TxTypeWithdrawalReturn CoinTransactionType = "withdrawal_return"
	TxTypePurchase         CoinTransactionType = "coin_purchase"
)

// CoinTransaction is an append-only ledger entry. Every balance mutation
// writes exactly one row, so the sum of Amount per email reconciles against
// the user's current coin balance.
type CoinTransaction struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Email       string              `gorm:"size:255;not null;index" json:"email"`
	Amount      int64               `gorm:"not null" json:"amount"` // signed: credits positive, debits negative
	Type        CoinTransactionType `gorm:"size:50;not null;index" json:"type"`
	Description string              `gorm:"type:text" json:"description"`
	CreatedAt   time.Time           `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for CoinTransaction model
func (CoinTransaction) TableName() string {
	return "coin_transactions"
}
