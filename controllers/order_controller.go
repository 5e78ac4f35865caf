package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/services"
	"github.com/nived-628/ShopSphere/utils"
)

// GET /v1/orders
func MyOrders(c *gin.Context) {
	utils.LogInfo("MyOrders called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	page, limit := 1, 10
	if p, ok := c.GetQuery("page"); ok {
		fmt.Sscanf(p, "%d", &page)
	}
	if l, ok := c.GetQuery("limit"); ok {
		fmt.Sscanf(l, "%d", &limit)
	}

	orders, total, err := orderService.ListForUser(user.ID, page, limit)
	if err != nil {
		utils.LogError("Failed to list orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	utils.Success(c, "Orders retrieved successfully", gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// GET /v1/orders/:orderNumber
func GetOrder(c *gin.Context) {
	utils.LogInfo("GetOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	order, err := orderService.GetByOrderNumber(c.Param("orderNumber"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if order.UserID != user.ID {
		utils.LogError("User %d attempted to read order %s owned by user %d", user.ID, order.OrderNumber, order.UserID)
		utils.Forbidden(c, "You do not own this order")
		return
	}

	utils.Success(c, "Order retrieved successfully", gin.H{"order": order})
}

// POST /v1/orders/:orderNumber/cancel
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	orderNumber := c.Param("orderNumber")

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Missing cancellation reason for order %s: %v", orderNumber, err)
		utils.BadRequest(c, "Reason is required", nil)
		return
	}

	order, err := orderService.GetByOrderNumber(orderNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if order.UserID != user.ID {
		utils.Forbidden(c, "You do not own this order")
		return
	}

	order, warnings, err := orderService.Cancel(orderNumber, req.Reason, user.Username)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	data := gin.H{
		"order_number": order.OrderNumber,
		"order_status": order.OrderStatus,
		"reason":       order.CancellationReason,
	}
	if len(warnings) > 0 {
		utils.SuccessWithWarnings(c, "Order cancelled", data, warnings)
		return
	}
	utils.Success(c, "Order cancelled", data)
}

// POST /v1/orders/:orderNumber/enrich
//
// Called by the checkout collaborator once the cart-derived order detail is
// ready; fills the stub created at payment-initiation time exactly once.
func EnrichOrder(c *gin.Context) {
	utils.LogInfo("EnrichOrder called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	orderNumber := c.Param("orderNumber")

	var req services.EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	order, err := orderService.GetByOrderNumber(orderNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if order.UserID != user.ID {
		utils.Forbidden(c, "You do not own this order")
		return
	}

	order, err = orderService.EnrichOrder(orderNumber, req, user.Username)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	// The coupon counter moves now, at placement, not at cart preview.
	var warnings []string
	if req.CouponCode != "" {
		if err := discountEngine.RedeemCoupon(req.CouponCode, user.ID); err != nil {
			utils.LogError("Coupon redemption failed for order %s: %v", orderNumber, err)
			warnings = append(warnings, fmt.Sprintf("coupon: %v", err))
		}
	}

	data := gin.H{"order": order}
	if len(warnings) > 0 {
		utils.SuccessWithWarnings(c, "Order enriched successfully", data, warnings)
		return
	}
	utils.Success(c, "Order enriched successfully", data)
}
