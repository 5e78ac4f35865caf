package models

import (
	"time"

	"gorm.io/gorm"
)

type Referral struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"uniqueIndex" json:"code"`
	OwnerUserID  uint           `json:"owner_user_id"`
	RewardAmount float64        `json:"reward_amount"`
	Active       bool           `json:"active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserReferral marks a referral code as consumed by one user. A code is
// single use per user, not single use globally.
type UserReferral struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"index:idx_user_referral,unique"`
	ReferralID uint      `json:"referral_id" gorm:"index:idx_user_referral,unique"`
	AppliedAt  time.Time `json:"applied_at"`
}
