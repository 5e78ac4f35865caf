package models

import (
	"time"
)

// Tracking status vocabulary. Courier-native codes are mapped into these at the
// bridge boundary; nothing else writes tracking statuses.
const (
	TrackingStatusOrderPlaced = "ORDER_PLACED"
	TrackingStatusPackaging   = "PACKAGING"
	TrackingStatusOnTheRoad   = "ON_THE_ROAD"
	TrackingStatusDelivered   = "DELIVERED"
	TrackingStatusCancelled   = "CANCELLED"
)

type Tracking struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	OrderNumber  string `gorm:"uniqueIndex;not null" json:"order_number"`
	DocketNumber string `json:"docket_number,omitempty"`
	Courier      string `json:"courier,omitempty"`
	Status       string `json:"status" gorm:"default:'ORDER_PLACED'"`
	OrderType    string `json:"order_type" gorm:"default:'normal'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	History []TrackingHistory `json:"history" gorm:"foreignKey:TrackingID"`
}

// TrackingHistory is append-only.
type TrackingHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TrackingID  uint      `json:"tracking_id"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasDocket reports whether goods have physically shipped. Cancellation after
// this point requires a courier-side cancellation call.
func (t *Tracking) HasDocket() bool {
	return t.DocketNumber != ""
}
