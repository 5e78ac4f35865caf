package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
)

// POST /v1/coupons/apply
//
// Cart-level preview. Free of side effects: the usage counter moves only when
// the order is actually placed.
func ApplyCoupon(c *gin.Context) {
	utils.LogInfo("ApplyCoupon called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Code and subtotal are required", err.Error())
		return
	}

	result, err := discountEngine.ValidateCoupon(req.Code, req.Subtotal, user.ID)
	if err != nil {
		utils.LogError("Coupon %s rejected for user ID: %d: %v", req.Code, user.ID, err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Coupon applied successfully", gin.H{
		"code":            result.Code,
		"discount_type":   result.DiscountType,
		"discount_value":  result.DiscountValue,
		"discount_amount": fmt.Sprintf("%.2f", result.DiscountAmount),
		"subtotal":        fmt.Sprintf("%.2f", req.Subtotal),
		"final_total":     fmt.Sprintf("%.2f", req.Subtotal-result.DiscountAmount),
	})
}
