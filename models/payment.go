package models

import (
	"strings"
	"time"
)

// Payment status constants
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusSuccess    = "success"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"
	PaymentStatusRefunded   = "refunded"
)

// Order type constants
const (
	OrderTypeNormal     = "normal"
	OrderTypeCustomized = "customized"
)

// PaymentNonTerminalStatuses are the statuses a confirmation may still move away from.
// Used as the guard set for conditional status updates.
var PaymentNonTerminalStatuses = []string{PaymentStatusPending, PaymentStatusProcessing}

type Payment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	OrderID         string `gorm:"uniqueIndex;not null" json:"order_id"`
	RazorpayOrderID string `gorm:"index" json:"razorpay_order_id"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" gorm:"default:'INR'"`
	Status   string  `json:"status" gorm:"default:'pending'"`

	// Billing snapshot captured at initiation, never re-derived.
	BillingName    string `json:"billing_name"`
	BillingEmail   string `json:"billing_email"`
	BillingPhone   string `json:"billing_phone"`
	BillingAddress string `json:"billing_address"`

	OrderType    string `json:"order_type" gorm:"default:'normal'"`
	OrderDetails string `json:"order_details,omitempty"`

	UserID uint `json:"user_id"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsTerminal reports whether the payment has reached a final status.
// Confirmations arriving after this point must be treated as no-ops.
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

// DetectOrderType is a best-effort fallback for callers that did not supply an
// order type. It scans the free-form order details payload for customization
// markers. The caller-supplied enum is always the source of truth.
func DetectOrderType(orderDetails string) string {
	lower := strings.ToLower(orderDetails)
	if strings.Contains(lower, "customized") || strings.Contains(lower, "custom-order") {
		return OrderTypeCustomized
	}
	return OrderTypeNormal
}
