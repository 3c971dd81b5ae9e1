package models

import (
	"time"
)

// Notification is a fire-and-forget message shown to a user after a
// decision that affects them. Delivery is best-effort and never part of a
// ledger transaction.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ToEmail     string    `gorm:"size:255;not null;index" json:"to_email"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	ActionRoute string    `gorm:"size:255" json:"action_route"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
