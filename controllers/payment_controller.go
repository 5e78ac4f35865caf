package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/services"
	"github.com/nived-628/ShopSphere/utils"
)

// POST /v1/payment/initiate
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	utils.LogInfo("Processing payment initiation for user ID: %d", user.ID)

	var req services.InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid initiation request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	req.UserID = user.ID
	if req.BillingEmail == "" {
		req.BillingEmail = user.Email
	}

	result, err := coordinator.Initiate(req)
	if err != nil {
		utils.LogError("Payment initiation failed for order %s: %v", req.OrderID, err)
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Payment initiated successfully", gin.H{
		"order": gin.H{
			"order_number":    result.OrderNumber,
			"remote_order_id": result.RemoteOrderID,
			"amount":          fmt.Sprintf("%.2f", result.Amount),
			"currency":        result.Currency,
			"amount_display":  result.AmountDisplay,
			"resumed":         result.Resumed,
		},
		"key": result.GatewayKey,
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

// POST /v1/payment/cancel
//
// Abandons a checkout that never reached a terminal state. Terminal payments
// are left untouched.
func CancelPayment(c *gin.Context) {
	utils.LogInfo("CancelPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		OrderID string `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Order id is required", err.Error())
		return
	}

	order, err := orderService.GetByOrderNumber(req.OrderID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if order.UserID != user.ID {
		utils.Forbidden(c, "You do not own this order")
		return
	}

	payment, err := coordinator.CancelPayment(req.OrderID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Payment cancelled", gin.H{
		"order_id": payment.OrderID,
		"status":   payment.Status,
	})
}

// POST /v1/payment/verify
//
// Client-redirect verification. Performs the identical state transition as the
// webhook path; whichever arrives first wins and the other is a no-op.
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		RemoteOrderID string `json:"remote_order_id" binding:"required"`
		PaymentID     string `json:"payment_id" binding:"required"`
		Signature     string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verification request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	verified := paymentGateway.VerifyPaymentSignature(req.RemoteOrderID, req.PaymentID, req.Signature)
	if !verified {
		utils.LogError("Payment signature verification failed for remote order %s, user ID: %d", req.RemoteOrderID, user.ID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}
	utils.LogInfo("Payment signature verified for remote order %s", req.RemoteOrderID)

	result, err := coordinator.Confirm(services.SourceClientRedirect, services.ConfirmSignal{
		RemoteOrderID: req.RemoteOrderID,
		PaymentID:     req.PaymentID,
		Succeeded:     true,
		Verified:      true,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	data := gin.H{
		"order_number":   result.Payment.OrderID,
		"payment_status": result.Payment.Status,
		"amount":         fmt.Sprintf("%.2f", result.Payment.Amount),
		"already_final":  result.AlreadyFinal,
	}
	if len(result.Warnings) > 0 {
		utils.SuccessWithWarnings(c, "Thank you for your payment! Your order has been placed.", data, result.Warnings)
		return
	}
	utils.Success(c, "Thank you for your payment! Your order has been placed.", data)
}
