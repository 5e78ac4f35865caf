package services

import (
	"time"

	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
	"gorm.io/gorm"
)

// DiscountEngine computes promo and referral discounts. Validation is a pure
// preview with no side effects; usage counters move only at order placement.
type DiscountEngine struct {
	db *gorm.DB
}

// NewDiscountEngine wires the engine with its database.
func NewDiscountEngine(db *gorm.DB) *DiscountEngine {
	return &DiscountEngine{db: db}
}

// CouponResult is the ephemeral discount application tuple.
type CouponResult struct {
	Code           string  `json:"code"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
	DiscountAmount float64 `json:"discount_amount"`
}

// ValidateCoupon resolves a code against a subtotal. Applying and re-applying
// in the cart is free of side effects; nothing is written here.
func (e *DiscountEngine) ValidateCoupon(code string, subtotal float64, userID uint) (*CouponResult, error) {
	var coupon models.Coupon
	if err := e.db.Where("code = ? AND active = ?", code, true).First(&coupon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("Invalid or inactive coupon")
		}
		return nil, utils.WrapError(err, "failed to look up coupon")
	}

	if time.Now().After(coupon.Expiry) {
		return nil, utils.ValidationError("Coupon has expired", nil)
	}
	if coupon.UsedCount >= coupon.UsageLimit {
		return nil, utils.ValidationError("Coupon usage limit reached", nil)
	}
	if subtotal < coupon.MinPurchase {
		return nil, utils.ValidationError("Subtotal is below the minimum purchase for this coupon", map[string]interface{}{
			"min_purchase": coupon.MinPurchase,
			"subtotal":     subtotal,
		})
	}

	var used models.UserCoupon
	if err := e.db.Where("user_id = ? AND coupon_id = ?", userID, coupon.ID).First(&used).Error; err == nil {
		return nil, utils.ConflictError("You have already used this coupon")
	}

	return &CouponResult{
		Code:           coupon.Code,
		DiscountType:   coupon.Type,
		DiscountValue:  coupon.Value,
		DiscountAmount: CouponDiscount(&coupon, subtotal),
	}, nil
}

// CouponDiscount computes the discount amount for a coupon against a subtotal.
// Percentage discounts are capped by max_discount, and no discount of either
// type ever exceeds the subtotal.
func CouponDiscount(coupon *models.Coupon, subtotal float64) float64 {
	var discount float64
	if coupon.Type == "percent" {
		discount = subtotal * coupon.Value / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	} else {
		discount = coupon.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// RedeemCoupon records the one-time usage at order-placement time. The counter
// increment is a conditional atomic update so concurrent redemptions cannot
// exceed the usage limit. Redeeming twice for the same user is a no-op.
func (e *DiscountEngine) RedeemCoupon(code string, userID uint) error {
	var coupon models.Coupon
	if err := e.db.Where("code = ? AND active = ?", code, true).First(&coupon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("Invalid or inactive coupon")
		}
		return utils.WrapError(err, "failed to look up coupon")
	}

	tx := e.db.Begin()
	if tx.Error != nil {
		return utils.WrapError(tx.Error, "failed to begin transaction")
	}

	var used models.UserCoupon
	if err := tx.Where("user_id = ? AND coupon_id = ?", userID, coupon.ID).First(&used).Error; err == nil {
		// Already redeemed by this user; idempotent.
		tx.Rollback()
		return nil
	}

	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND used_count < usage_limit", coupon.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		tx.Rollback()
		return utils.WrapError(res.Error, "failed to increment coupon usage")
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return utils.ValidationError("Coupon usage limit reached", nil)
	}

	if err := tx.Create(&models.UserCoupon{
		UserID:   userID,
		CouponID: coupon.ID,
		UsedAt:   time.Now(),
	}).Error; err != nil {
		tx.Rollback()
		return utils.WrapError(err, "failed to record coupon usage")
	}

	if err := tx.Commit().Error; err != nil {
		return utils.WrapError(err, "failed to commit coupon redemption")
	}
	utils.LogInfo("Coupon %s redeemed by user %d", code, userID)
	return nil
}

// ReferralResult reports a successful referral application.
type ReferralResult struct {
	Code         string  `json:"code"`
	RewardAmount float64 `json:"reward_amount"`
}

// ApplyReferral consumes a referral code for a user. The code is single use
// per user; the fixed reward is credited to both the referrer and the
// referred user in the same transaction.
func (e *DiscountEngine) ApplyReferral(code string, userID uint) (*ReferralResult, error) {
	var referral models.Referral
	if err := e.db.Where("code = ? AND active = ?", code, true).First(&referral).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("Invalid or inactive referral code")
		}
		return nil, utils.WrapError(err, "failed to look up referral code")
	}

	if referral.OwnerUserID == userID {
		return nil, utils.ValidationError("You cannot use your own referral code", nil)
	}

	var consumed models.UserReferral
	if err := e.db.Where("user_id = ? AND referral_id = ?", userID, referral.ID).First(&consumed).Error; err == nil {
		return nil, utils.ConflictError("Referral code already applied")
	}

	tx := e.db.Begin()
	if tx.Error != nil {
		return nil, utils.WrapError(tx.Error, "failed to begin transaction")
	}

	if err := tx.Create(&models.UserReferral{
		UserID:     userID,
		ReferralID: referral.ID,
		AppliedAt:  time.Now(),
	}).Error; err != nil {
		// Unique index: a racing application lost the insert.
		tx.Rollback()
		return nil, utils.ConflictError("Referral code already applied")
	}

	for _, id := range []uint{referral.OwnerUserID, userID} {
		if err := tx.Model(&models.User{}).
			Where("id = ?", id).
			UpdateColumn("reward_balance", gorm.Expr("reward_balance + ?", referral.RewardAmount)).Error; err != nil {
			tx.Rollback()
			return nil, utils.WrapError(err, "failed to credit reward balance")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.WrapError(err, "failed to commit referral application")
	}
	utils.LogInfo("Referral %s applied by user %d, reward %.2f credited to both sides", code, userID, referral.RewardAmount)
	return &ReferralResult{Code: referral.Code, RewardAmount: referral.RewardAmount}, nil
}
