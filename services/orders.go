package services

import (
	"fmt"
	"math"
	"time"

	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
	"gorm.io/gorm"
)

// OrderService owns the fulfillment-side lifecycle of the Order Record.
type OrderService struct {
	db       *gorm.DB
	tracking *TrackingBridge
}

// NewOrderService wires the service with its collaborators.
func NewOrderService(db *gorm.DB, tracking *TrackingBridge) *OrderService {
	return &OrderService{db: db, tracking: tracking}
}

// GetByOrderNumber loads one order with items and history.
func (s *OrderService) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderItems").Preload("StatusHistory").
		Where("order_number = ?", orderNumber).First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.NotFoundError("Order not found")
	}
	if err != nil {
		return nil, utils.WrapError(err, "failed to load order")
	}
	return &order, nil
}

// ListForUser returns a page of the user's orders, newest first.
func (s *OrderService) ListForUser(userID uint, page, limit int) ([]models.Order, int64, error) {
	page, limit = utils.ClampPagination(page, limit)
	var total int64
	if err := s.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, utils.WrapError(err, "failed to count orders")
	}
	var orders []models.Order
	err := s.db.Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, utils.WrapError(err, "failed to list orders")
	}
	return orders, total, nil
}

// Cancel cancels an order that has not shipped. The tracking forward and the
// customer notification are best-effort; their failures come back as warnings.
func (s *OrderService) Cancel(orderNumber, reason, actor string) (*models.Order, []string, error) {
	if reason == "" {
		return nil, nil, utils.ValidationError("Cancellation reason is required", nil)
	}

	order, err := s.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, nil, err
	}

	switch order.OrderStatus {
	case models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCancelled, models.OrderStatusReturned:
		utils.LogError("Cancel rejected for order %s in status %s", orderNumber, order.OrderStatus)
		return nil, nil, utils.ConflictError(fmt.Sprintf("Order cannot be cancelled while %s", order.OrderStatus))
	}

	now := time.Now()
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, nil, utils.WrapError(tx.Error, "failed to begin transaction")
	}

	updates := map[string]interface{}{
		"order_status":        models.OrderStatusCancelled,
		"cancellation_reason": reason,
	}
	if order.CancelledAt == nil {
		updates["cancelled_at"] = &now
	}
	if err := tx.Model(order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, nil, utils.WrapError(err, "failed to update order")
	}
	if err := tx.Create(&models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  models.OrderStatusCancelled,
		Note:    reason,
		Actor:   actor,
	}).Error; err != nil {
		tx.Rollback()
		return nil, nil, utils.WrapError(err, "failed to append status history")
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, utils.WrapError(err, "failed to commit cancellation")
	}

	order.OrderStatus = models.OrderStatusCancelled
	order.CancellationReason = reason
	RecordAudit(s.db, actor, "order.cancel", orderNumber, reason)

	warnings := []string{}
	if _, terr := s.tracking.GetByOrderNumber(orderNumber); terr == nil {
		if err := s.tracking.CancelShipment(orderNumber, reason); err != nil {
			utils.LogError("Tracking cancel failed for order %s at stage tracking-cancel: %v", orderNumber, err)
			warnings = append(warnings, fmt.Sprintf("tracking: %v", err))
		}
	}
	if order.BillingEmail != "" {
		if err := utils.SendOrderCancellation(order.BillingEmail, orderNumber, reason); err != nil {
			utils.LogError("Cancellation email failed for order %s at stage notification: %v", orderNumber, err)
			warnings = append(warnings, fmt.Sprintf("notification: %v", err))
		}
	}
	return order, warnings, nil
}

// Ship marks an order shipped with a courier docket and pushes the docket into
// the Tracking Record. The docket push is best-effort; its failure comes back
// as a warning.
func (s *OrderService) Ship(orderNumber, docketNumber, courier, actor string) (*models.Order, []string, error) {
	if docketNumber == "" {
		return nil, nil, utils.ValidationError("Docket number is required", nil)
	}

	order, err := s.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, nil, err
	}
	if order.IsTerminal() {
		return nil, nil, utils.ConflictError(fmt.Sprintf("Order is already %s", order.OrderStatus))
	}
	if order.OrderStatus == models.OrderStatusShipped {
		return order, nil, nil
	}

	now := time.Now()
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, nil, utils.WrapError(tx.Error, "failed to begin transaction")
	}
	updates := map[string]interface{}{"order_status": models.OrderStatusShipped}
	if order.ShippedAt == nil {
		updates["shipped_at"] = &now
	}
	if err := tx.Model(order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, nil, utils.WrapError(err, "failed to update order")
	}
	if err := tx.Create(&models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  models.OrderStatusShipped,
		Note:    fmt.Sprintf("shipped via %s, docket %s", courier, docketNumber),
		Actor:   actor,
	}).Error; err != nil {
		tx.Rollback()
		return nil, nil, utils.WrapError(err, "failed to append status history")
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, utils.WrapError(err, "failed to commit shipment")
	}

	order.OrderStatus = models.OrderStatusShipped
	warnings := []string{}
	if err := s.tracking.AssignDocket(orderNumber, docketNumber, courier); err != nil {
		// Shipment is committed; the tracking push is replayable.
		utils.LogError("Docket assignment failed for order %s at stage tracking-docket: %v", orderNumber, err)
		warnings = append(warnings, fmt.Sprintf("tracking: %v", err))
	}
	RecordAudit(s.db, actor, "order.ship", orderNumber, fmt.Sprintf("courier %s docket %s", courier, docketNumber))
	return order, warnings, nil
}

// UpdateStatus is the administrative transition. The matching timestamp field
// is stamped only the first time a status is reached, so replays are safe.
func (s *OrderService) UpdateStatus(orderNumber, status, note, actor string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, utils.ValidationError("Invalid order status", map[string]interface{}{
			"valid_statuses": models.ValidOrderStatuses,
		})
	}

	order, err := s.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == status {
		return order, nil
	}
	if order.IsTerminal() {
		return nil, utils.ConflictError(fmt.Sprintf("Order is already %s", order.OrderStatus))
	}

	now := time.Now()
	updates := map[string]interface{}{"order_status": status}
	switch status {
	case models.OrderStatusShipped:
		if order.ShippedAt == nil {
			updates["shipped_at"] = &now
		}
	case models.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			updates["delivered_at"] = &now
		}
	case models.OrderStatusCancelled:
		if order.CancelledAt == nil {
			updates["cancelled_at"] = &now
		}
	case models.OrderStatusReturned:
		if order.ReturnedAt == nil {
			updates["returned_at"] = &now
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, utils.WrapError(tx.Error, "failed to begin transaction")
	}
	if err := tx.Model(order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapError(err, "failed to update order status")
	}
	if err := tx.Create(&models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  status,
		Note:    note,
		Actor:   actor,
	}).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapError(err, "failed to append status history")
	}
	if err := tx.Commit().Error; err != nil {
		return nil, utils.WrapError(err, "failed to commit status update")
	}

	order.OrderStatus = status
	RecordAudit(s.db, actor, "order.status", orderNumber, status)
	return order, nil
}

// BulkResult is the per-item outcome of a bulk operation.
type BulkResult struct {
	OrderNumber string   `json:"order_number"`
	Success     bool     `json:"success"`
	Error       string   `json:"error,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// ShipItem is one entry of a bulk shipment request.
type ShipItem struct {
	OrderNumber  string `json:"order_number"`
	DocketNumber string `json:"docket_number"`
	Courier      string `json:"courier"`
}

// BulkShip ships a list of orders, collecting per-item results instead of
// failing the whole batch on one bad entry.
func (s *OrderService) BulkShip(items []ShipItem, actor string) []BulkResult {
	results := make([]BulkResult, 0, len(items))
	for _, item := range items {
		_, warnings, err := s.Ship(item.OrderNumber, item.DocketNumber, item.Courier, actor)
		if err != nil {
			results = append(results, BulkResult{OrderNumber: item.OrderNumber, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{OrderNumber: item.OrderNumber, Success: true, Warnings: warnings})
	}
	return results
}

// StatusItem is one entry of a bulk status update request.
type StatusItem struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Note        string `json:"note"`
}

// BulkUpdateStatus applies status updates item by item.
func (s *OrderService) BulkUpdateStatus(items []StatusItem, actor string) []BulkResult {
	results := make([]BulkResult, 0, len(items))
	for _, item := range items {
		if _, err := s.UpdateStatus(item.OrderNumber, item.Status, item.Note, actor); err != nil {
			results = append(results, BulkResult{OrderNumber: item.OrderNumber, Error: err.Error()})
			continue
		}
		results = append(results, BulkResult{OrderNumber: item.OrderNumber, Success: true})
	}
	return results
}

// EnrichRequest carries the cart-derived detail merged into a defensively
// created stub order.
type EnrichRequest struct {
	Items           []models.OrderItem `json:"items"`
	BillingAddress  string             `json:"billing_address"`
	ShippingAddress string             `json:"shipping_address"`
	Subtotal        float64            `json:"subtotal"`
	Discount        float64            `json:"discount"`
	Tax             float64            `json:"tax"`
	ShippingCharge  float64            `json:"shipping_charge"`
	TotalAmount     float64            `json:"total_amount"`
	CouponCode      string             `json:"coupon_code"`
}

// EnrichOrder fills a stub order created at payment-initiation time with the
// cart-derived line items. It runs exactly once per order: a second attempt is
// a conflict. Historical totals are never silently recomputed; the enrichment
// is recorded as a status-history entry.
func (s *OrderService) EnrichOrder(orderNumber string, req EnrichRequest, actor string) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, utils.ValidationError("At least one line item is required", nil)
	}
	if math.Abs(req.TotalAmount-(req.Subtotal-req.Discount+req.Tax+req.ShippingCharge)) > 0.009 {
		return nil, utils.ValidationError("Total amount does not match subtotal - discount + tax + shipping", nil)
	}

	order, err := s.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if len(order.OrderItems) > 0 {
		return nil, utils.ConflictError("Order has already been enriched")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, utils.WrapError(tx.Error, "failed to begin transaction")
	}
	for i := range req.Items {
		req.Items[i].OrderID = order.ID
		if err := tx.Create(&req.Items[i]).Error; err != nil {
			tx.Rollback()
			return nil, utils.WrapError(err, "failed to create order item")
		}
	}
	updates := map[string]interface{}{
		"subtotal":        req.Subtotal,
		"discount":        req.Discount,
		"tax":             req.Tax,
		"shipping_charge": req.ShippingCharge,
		"total_amount":    req.TotalAmount,
		"coupon_code":     req.CouponCode,
	}
	if req.BillingAddress != "" {
		updates["billing_address"] = req.BillingAddress
	}
	if req.ShippingAddress != "" {
		updates["shipping_address"] = req.ShippingAddress
	}
	if err := tx.Model(order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapError(err, "failed to update order totals")
	}
	if err := tx.Create(&models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  order.OrderStatus,
		Note:    "order enriched from checkout",
		Actor:   actor,
	}).Error; err != nil {
		tx.Rollback()
		return nil, utils.WrapError(err, "failed to append status history")
	}
	if err := tx.Commit().Error; err != nil {
		return nil, utils.WrapError(err, "failed to commit enrichment")
	}
	return s.GetByOrderNumber(orderNumber)
}
