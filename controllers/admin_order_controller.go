package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/config"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/services"
	"github.com/nived-628/ShopSphere/utils"
	"github.com/tealeg/xlsx"
)

func adminFromContext(c *gin.Context) (*models.Admin, bool) {
	adminVal, exists := c.Get("admin")
	if !exists {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found in context")
		return nil, false
	}
	admin, ok := adminVal.(models.Admin)
	if !ok {
		utils.LogError("Invalid admin type in context")
		utils.InternalServerError(c, "Invalid admin type", nil)
		return nil, false
	}
	return &admin, true
}

// PUT /v1/admin/orders/:orderNumber/ship
func AdminShipOrder(c *gin.Context) {
	utils.LogInfo("AdminShipOrder called")
	admin, ok := adminFromContext(c)
	if !ok {
		return
	}

	var req struct {
		DocketNumber string `json:"docket_number"`
		Courier      string `json:"courier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	order, warnings, err := orderService.Ship(c.Param("orderNumber"), req.DocketNumber, req.Courier, admin.Email)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	data := gin.H{
		"order_number":  order.OrderNumber,
		"order_status":  order.OrderStatus,
		"docket_number": req.DocketNumber,
		"courier":       req.Courier,
	}
	if len(warnings) > 0 {
		utils.SuccessWithWarnings(c, "Order shipped successfully", data, warnings)
		return
	}
	utils.Success(c, "Order shipped successfully", data)
}

// PUT /v1/admin/orders/:orderNumber/status
func AdminUpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("AdminUpdateOrderStatus called")
	admin, ok := adminFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.BadRequest(c, "Status is required", nil)
		return
	}

	order, err := orderService.UpdateStatus(c.Param("orderNumber"), req.Status, req.Note, admin.Email)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Order status updated successfully", gin.H{
		"order_number": order.OrderNumber,
		"order_status": order.OrderStatus,
	})
}

// POST /v1/admin/orders/bulk/ship
func AdminBulkShip(c *gin.Context) {
	utils.LogInfo("AdminBulkShip called")
	admin, ok := adminFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Items []services.ShipItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		utils.BadRequest(c, "A non-empty items list is required", nil)
		return
	}

	results := orderService.BulkShip(req.Items, admin.Email)
	utils.Success(c, "Bulk shipment processed", gin.H{"results": results})
}

// POST /v1/admin/orders/bulk/status
func AdminBulkUpdateStatus(c *gin.Context) {
	utils.LogInfo("AdminBulkUpdateStatus called")
	admin, ok := adminFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Items []services.StatusItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		utils.BadRequest(c, "A non-empty items list is required", nil)
		return
	}

	results := orderService.BulkUpdateStatus(req.Items, admin.Email)
	utils.Success(c, "Bulk status update processed", gin.H{"results": results})
}

// POST /v1/admin/payments/:orderId/refund
func AdminRefundPayment(c *gin.Context) {
	utils.LogInfo("AdminRefundPayment called")
	admin, ok := adminFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)

	payment, err := coordinator.Refund(c.Param("orderId"), admin.Email, req.Note)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Payment refunded", gin.H{
		"order_id": payment.OrderID,
		"status":   payment.Status,
		"amount":   fmt.Sprintf("%.2f", payment.Amount),
	})
}

// POST /v1/admin/track/:orderNumber/events
//
// Ingests one courier-reported event. Unknown courier status codes are
// rejected, never silently mapped.
func AdminRecordCourierEvent(c *gin.Context) {
	utils.LogInfo("AdminRecordCourierEvent called")
	if _, ok := adminFromContext(c); !ok {
		return
	}

	var req struct {
		StatusCode  string `json:"status_code" binding:"required"`
		Description string `json:"description"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "status_code is required", err.Error())
		return
	}

	tracking, err := trackingBridge.RecordCourierEvent(c.Param("orderNumber"), req.StatusCode, req.Description, req.Location)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.Success(c, "Courier event recorded", gin.H{
		"order_number": tracking.OrderNumber,
		"status":       tracking.Status,
	})
}

// GET /v1/admin/orders/export
//
// Downloads recent orders as an Excel workbook.
func AdminExportOrders(c *gin.Context) {
	utils.LogInfo("AdminExportOrders called")
	if _, ok := adminFromContext(c); !ok {
		return
	}

	days := 30
	if d, ok := c.GetQuery("days"); ok {
		fmt.Sscanf(d, "%d", &days)
	}
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var orders []models.Order
	if err := config.DB.Preload("OrderItems").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d orders for export", len(orders))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("SHOPSPHERE - Order Export")
	rangeRow := sheet.AddRow()
	rangeRow.AddCell().SetString("From " + since.Format("2006-01-02") + " to " + time.Now().Format("2006-01-02"))
	sheet.AddRow()

	headers := []string{"Order Number", "Date", "Items", "Subtotal", "Discount", "Tax", "Shipping", "Total", "Payment Status", "Order Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	for _, order := range orders {
		itemCount := 0
		for _, item := range order.OrderItems {
			itemCount += item.Quantity
		}
		row := sheet.AddRow()
		row.AddCell().SetString(order.OrderNumber)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetInt(itemCount)
		row.AddCell().SetFloat(order.Subtotal)
		row.AddCell().SetFloat(order.Discount)
		row.AddCell().SetFloat(order.Tax)
		row.AddCell().SetFloat(order.ShippingCharge)
		row.AddCell().SetFloat(order.TotalAmount)
		row.AddCell().SetString(order.PaymentStatus)
		row.AddCell().SetString(order.OrderStatus)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel export: %v", err)
	}
}
