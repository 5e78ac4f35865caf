package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
)

// Payment status constants for the order side of the ledger
const (
	OrderPaymentPending  = "pending"
	OrderPaymentPaid     = "paid"
	OrderPaymentFailed   = "failed"
	OrderPaymentRefunded = "refunded"
)

// OrderTerminalStatuses are statuses that accept no further transitions.
var OrderTerminalStatuses = []string{OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned}

// ValidOrderStatuses lists every status an admin may set through the status endpoint.
var ValidOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      uint   `json:"user_id"`
	User        User   `json:"user,omitempty" gorm:"foreignKey:UserID"`

	BillingName     string `json:"billing_name"`
	BillingEmail    string `json:"billing_email"`
	BillingPhone    string `json:"billing_phone"`
	BillingAddress  string `json:"billing_address"`
	ShippingAddress string `json:"shipping_address"`

	PaymentMethod string `json:"payment_method"`
	OrderStatus   string `json:"order_status" gorm:"default:'pending'"`
	PaymentStatus string `json:"payment_status" gorm:"default:'pending'"`
	OrderType     string `json:"order_type" gorm:"default:'normal'"`

	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	Tax            float64 `json:"tax"`
	ShippingCharge float64 `json:"shipping_charge"`
	TotalAmount    float64 `json:"total_amount"`

	CouponCode string `json:"coupon_code,omitempty"`

	OrderedAt   time.Time  `json:"ordered_at"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrderItems    []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// OrderStatusHistory is append-only; rows are never updated or deleted.
type OrderStatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `json:"order_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsTerminal reports whether the order has reached a final status.
func (o *Order) IsTerminal() bool {
	for _, s := range OrderTerminalStatuses {
		if o.OrderStatus == s {
			return true
		}
	}
	return false
}

// IsValidOrderStatus checks a status against the fixed enumeration.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
