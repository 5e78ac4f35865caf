package models

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"uniqueIndex" json:"code"`
	Type        string         `json:"type"` // "flat" or "percent"
	Value       float64        `json:"value"`
	MinPurchase float64        `json:"min_purchase"`
	MaxDiscount float64        `json:"max_discount"`
	Expiry      time.Time      `json:"expiry"`
	UsageLimit  int            `json:"usage_limit"`
	UsedCount   int            `json:"used_count"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserCoupon records a redemption. Written only at order-placement time;
// cart-level application never touches it.
type UserCoupon struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `json:"user_id" gorm:"index:idx_user_coupon,unique"`
	CouponID uint      `json:"coupon_id" gorm:"index:idx_user_coupon,unique"`
	UsedAt   time.Time `json:"used_at"`
}
