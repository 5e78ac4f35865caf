package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a storefront customer. Profile management lives in the
// account service; this row carries only what payments and referrals need.
type User struct {
	gorm.Model
	Username      string  `gorm:"uniqueIndex;not null" json:"username"`
	Email         string  `gorm:"uniqueIndex;not null" json:"email"`
	Password      string  `json:"-"`
	Phone         string  `json:"phone"`
	IsBlocked     bool    `json:"is_blocked"`
	RewardBalance float64 `json:"reward_balance" gorm:"default:0"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// AuditLog records admin and system actions against orders and payments.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Actor       string    `json:"actor"`
	Action      string    `json:"action"`
	OrderNumber string    `gorm:"index" json:"order_number"`
	Detail      string    `json:"detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
