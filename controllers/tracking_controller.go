package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
)

// POST /v1/track
//
// Customer-facing tracking lookup, verified against the contact email on the
// order rather than a login session.
func TrackOrder(c *gin.Context) {
	utils.LogInfo("TrackOrder called")

	var req struct {
		OrderNumber string `json:"order_number" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Order number and email are required", err.Error())
		return
	}

	order, err := orderService.GetByOrderNumber(req.OrderNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if !strings.EqualFold(order.BillingEmail, req.Email) {
		utils.LogError("Tracking lookup email mismatch for order %s", req.OrderNumber)
		utils.Forbidden(c, "Email does not match this order")
		return
	}

	tracking, err := trackingBridge.GetByOrderNumber(req.OrderNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Tracking retrieved successfully", gin.H{
		"order_number":  tracking.OrderNumber,
		"docket_number": tracking.DocketNumber,
		"courier":       tracking.Courier,
		"status":        tracking.Status,
		"history":       tracking.History,
	})
}

// POST /v1/track/:orderNumber/cancel-shipment
func CancelShipment(c *gin.Context) {
	utils.LogInfo("CancelShipment called")
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

	// Customized orders are made to measure and cannot be cancelled once a
	// docket exists.
	tracking, err := trackingBridge.GetByOrderNumber(orderNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if tracking.OrderType == models.OrderTypeCustomized && tracking.HasDocket() {
		utils.Conflict(c, "Customized orders cannot be cancelled after shipping", nil)
		return
	}

	if err := trackingBridge.CancelShipment(orderNumber, req.Reason); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	utils.Success(c, "Shipment cancelled", gin.H{"order_number": orderNumber})
}

// GET /v1/orders/:orderNumber/proof-of-delivery
//
// Available only once the order is delivered.
func DownloadProofOfDelivery(c *gin.Context) {
	utils.LogInfo("DownloadProofOfDelivery called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	orderNumber := c.Param("orderNumber")

	order, err := orderService.GetByOrderNumber(orderNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if order.UserID != user.ID {
		utils.Forbidden(c, "You do not own this order")
		return
	}
	if order.OrderStatus != models.OrderStatusDelivered {
		utils.Conflict(c, "Proof of delivery is available only after delivery", nil)
		return
	}

	tracking, err := trackingBridge.GetByOrderNumber(orderNumber)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "ShopSphere")
	pdf.Ln(12)
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "PROOF OF DELIVERY")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Order Number: "+order.OrderNumber)
	pdf.Ln(8)
	pdf.Cell(60, 8, "Docket Number: "+tracking.DocketNumber)
	pdf.Ln(8)
	pdf.Cell(60, 8, "Courier: "+tracking.Courier)
	pdf.Ln(8)
	if order.DeliveredAt != nil {
		pdf.Cell(60, 8, "Delivered At: "+order.DeliveredAt.Format("2006-01-02 15:04:05"))
		pdf.Ln(8)
	}
	pdf.Cell(60, 8, "Recipient: "+order.BillingName)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Shipping Address: "+order.ShippingAddress)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(40, 8, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Location", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Time", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, event := range tracking.History {
		pdf.CellFormat(40, 8, event.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, event.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, event.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, event.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render proof of delivery for order %s: %v", orderNumber, err)
		utils.InternalServerError(c, "Failed to generate proof of delivery", nil)
		return
	}
	utils.LogInfo("Proof of delivery generated for order %s", orderNumber)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=pod-%s.pdf", order.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
