package models

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBuyer  Role = "buyer"
	RoleWorker Role = "worker"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleBuyer, RoleWorker:
		return true
	}
	return false
}

// User represents a marketplace account. Coin is the internal currency
// balance; it only ever changes through the ledger service.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	AvatarURL *string   `gorm:"size:500" json:"avatar_url,omitempty"`
	Role      Role      `gorm:"size:20;not null;default:worker;index" json:"role"`
	Coin      int64     `gorm:"not null;default:0" json:"coin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// RegisterRequest is the payload for the first-sign-in upsert.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Role      Role    `json:"role"`
}

// UpdateRoleRequest is the admin payload for changing a user's role.
type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}
