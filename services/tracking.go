package services

import (
	"fmt"

	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
	"gorm.io/gorm"
)

// courierStatusMap translates the courier partner's native status codes into
// the internal vocabulary. Unknown codes fail loudly; nothing defaults.
var courierStatusMap = map[string]string{
	"order_placed": models.TrackingStatusOrderPlaced,
	"packed":       models.TrackingStatusPackaging,
	"packaging":    models.TrackingStatusPackaging,
	"in_transit":   models.TrackingStatusOnTheRoad,
	"on_the_road":  models.TrackingStatusOnTheRoad,
	"shipped":      models.TrackingStatusOnTheRoad,
	"delivered":    models.TrackingStatusDelivered,
	"cancelled":    models.TrackingStatusCancelled,
	"rto":          models.TrackingStatusCancelled,
}

// MapCourierStatus converts a courier-native status code into the internal
// enumeration. Unmapped codes return an error rather than a misleading status.
func MapCourierStatus(code string) (string, error) {
	if mapped, ok := courierStatusMap[code]; ok {
		return mapped, nil
	}
	return "", utils.ValidationError(fmt.Sprintf("Unknown courier status code %q", code), nil)
}

// TrackingBridge maintains the Tracking Record and forwards courier events
// into the internal status vocabulary.
type TrackingBridge struct {
	db      *gorm.DB
	courier CourierClient
}

// NewTrackingBridge wires the bridge with its database and courier client.
func NewTrackingBridge(db *gorm.DB, courier CourierClient) *TrackingBridge {
	return &TrackingBridge{db: db, courier: courier}
}

// CreateForOrder creates the Tracking Record right after payment confirmation,
// before any physical shipment exists. Calling it twice is a no-op, which
// keeps racing payment confirmations from creating duplicates.
func (b *TrackingBridge) CreateForOrder(orderNumber, orderType string) error {
	var existing models.Tracking
	if err := b.db.Where("order_number = ?", orderNumber).First(&existing).Error; err == nil {
		utils.LogDebug("Tracking record already exists for order %s", orderNumber)
		return nil
	}

	tracking := models.Tracking{
		OrderNumber: orderNumber,
		Status:      models.TrackingStatusOrderPlaced,
		OrderType:   orderType,
	}
	if err := b.db.Create(&tracking).Error; err != nil {
		return utils.WrapError(err, "failed to create tracking record")
	}
	history := models.TrackingHistory{
		TrackingID:  tracking.ID,
		Status:      models.TrackingStatusOrderPlaced,
		Description: "Order confirmed and queued for packaging",
	}
	if err := b.db.Create(&history).Error; err != nil {
		return utils.WrapError(err, "failed to append tracking history")
	}
	utils.LogInfo("Created tracking record for order %s", orderNumber)
	return nil
}

// AssignDocket stores the courier docket once goods physically ship and moves
// the record onto the road. Creates the record when payment-time creation was
// missed.
func (b *TrackingBridge) AssignDocket(orderNumber, docketNumber, courier string) error {
	if docketNumber == "" {
		return utils.ValidationError("Docket number is required", nil)
	}

	var tracking models.Tracking
	err := b.db.Where("order_number = ?", orderNumber).First(&tracking).Error
	if err == gorm.ErrRecordNotFound {
		tracking = models.Tracking{OrderNumber: orderNumber, Status: models.TrackingStatusOrderPlaced}
		if err := b.db.Create(&tracking).Error; err != nil {
			return utils.WrapError(err, "failed to create tracking record")
		}
	} else if err != nil {
		return utils.WrapError(err, "failed to look up tracking record")
	}

	updates := map[string]interface{}{
		"docket_number": docketNumber,
		"courier":       courier,
		"status":        models.TrackingStatusOnTheRoad,
	}
	if err := b.db.Model(&tracking).Updates(updates).Error; err != nil {
		return utils.WrapError(err, "failed to assign docket")
	}
	history := models.TrackingHistory{
		TrackingID:  tracking.ID,
		Status:      models.TrackingStatusOnTheRoad,
		Description: fmt.Sprintf("Shipped via %s, docket %s", courier, docketNumber),
	}
	if err := b.db.Create(&history).Error; err != nil {
		return utils.WrapError(err, "failed to append tracking history")
	}
	utils.LogInfo("Assigned docket %s to order %s", docketNumber, orderNumber)
	return nil
}

// RecordCourierEvent ingests one courier-reported event, mapping its status
// into the internal vocabulary and appending history.
func (b *TrackingBridge) RecordCourierEvent(orderNumber, courierCode, description, location string) (*models.Tracking, error) {
	status, err := MapCourierStatus(courierCode)
	if err != nil {
		utils.LogError("Rejected unmapped courier status %q for order %s", courierCode, orderNumber)
		return nil, err
	}

	var tracking models.Tracking
	if err := b.db.Where("order_number = ?", orderNumber).First(&tracking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("Tracking record not found")
		}
		return nil, utils.WrapError(err, "failed to look up tracking record")
	}

	if err := b.db.Model(&tracking).Update("status", status).Error; err != nil {
		return nil, utils.WrapError(err, "failed to update tracking status")
	}
	history := models.TrackingHistory{
		TrackingID:  tracking.ID,
		Status:      status,
		Description: description,
		Location:    location,
	}
	if err := b.db.Create(&history).Error; err != nil {
		return nil, utils.WrapError(err, "failed to append tracking history")
	}

	tracking.Status = status
	utils.LogInfo("Recorded courier event %s (%s) for order %s", courierCode, status, orderNumber)
	return &tracking, nil
}

// CancelShipment cancels tracking for an order. Before a docket exists this is
// purely an order-level cancellation; once a docket exists the courier must
// accept the cancellation first.
func (b *TrackingBridge) CancelShipment(orderNumber, reason string) error {
	var tracking models.Tracking
	if err := b.db.Where("order_number = ?", orderNumber).First(&tracking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundError("Tracking record not found")
		}
		return utils.WrapError(err, "failed to look up tracking record")
	}

	if tracking.Status == models.TrackingStatusDelivered {
		return utils.ConflictError("Delivered shipments cannot be cancelled")
	}
	if tracking.Status == models.TrackingStatusCancelled {
		return nil
	}

	if tracking.HasDocket() {
		if err := b.courier.CancelShipment(tracking.DocketNumber, reason); err != nil {
			return err
		}
	}

	if err := b.db.Model(&tracking).Update("status", models.TrackingStatusCancelled).Error; err != nil {
		return utils.WrapError(err, "failed to cancel tracking record")
	}
	history := models.TrackingHistory{
		TrackingID:  tracking.ID,
		Status:      models.TrackingStatusCancelled,
		Description: reason,
	}
	if err := b.db.Create(&history).Error; err != nil {
		return utils.WrapError(err, "failed to append tracking history")
	}
	utils.LogInfo("Cancelled shipment for order %s (docket %q)", orderNumber, tracking.DocketNumber)
	return nil
}

// GetByOrderNumber loads a tracking record with its history.
func (b *TrackingBridge) GetByOrderNumber(orderNumber string) (*models.Tracking, error) {
	var tracking models.Tracking
	err := b.db.Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("tracking_histories.created_at ASC")
	}).Where("order_number = ?", orderNumber).First(&tracking).Error
	if err == gorm.ErrRecordNotFound {
		return nil, utils.NotFoundError("Tracking record not found")
	}
	if err != nil {
		return nil, utils.WrapError(err, "failed to load tracking record")
	}
	return &tracking, nil
}
