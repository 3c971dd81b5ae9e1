package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminStats is the platform-wide dashboard rollup.
type AdminStats struct {
	TotalWorkers  int64           `json:"total_workers"`
	TotalBuyers   int64           `json:"total_buyers"`
	TotalCoins    int64           `json:"total_coins"`
	TotalPayments decimal.Decimal `json:"total_payments"`
}

// BuyerStats is the per-buyer dashboard rollup.
type BuyerStats struct {
	TaskCount    int64 `json:"task_count"`
	PendingSlots int64 `json:"pending_slots"`
	TotalPaid    int64 `json:"total_paid"`
}

// WorkerStats is the per-worker dashboard rollup.
type WorkerStats struct {
	TotalSubmissions   int64 `json:"total_submissions"`
	PendingSubmissions int64 `json:"pending_submissions"`
	TotalEarnings      int64 `json:"total_earnings"`
}

// PlatformStats is a periodic snapshot row written by the stats job.
type PlatformStats struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	TotalUsers         int64     `gorm:"not null" json:"total_users"`
	TotalWorkers       int64     `gorm:"not null" json:"total_workers"`
	TotalBuyers        int64     `gorm:"not null" json:"total_buyers"`
	TotalCoins         int64     `gorm:"not null" json:"total_coins"`
	OpenTasks          int64     `gorm:"not null" json:"open_tasks"`
	PendingSubmissions int64     `gorm:"not null" json:"pending_submissions"`
	PendingWithdrawals int64     `gorm:"not null" json:"pending_withdrawals"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for PlatformStats model
func (PlatformStats) TableName() string {
	return "platform_stats"
}
