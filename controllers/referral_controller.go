package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
)

// POST /v1/referrals/apply
func ApplyReferral(c *gin.Context) {
	utils.LogInfo("ApplyReferral called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Referral code is required", err.Error())
		return
	}

	result, err := discountEngine.ApplyReferral(req.Code, user.ID)
	if err != nil {
		utils.LogError("Referral %s rejected for user ID: %d: %v", req.Code, user.ID, err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Referral applied! Rewards credited to both accounts.", gin.H{
		"code":          result.Code,
		"reward_amount": fmt.Sprintf("%.2f", result.RewardAmount),
	})
}
