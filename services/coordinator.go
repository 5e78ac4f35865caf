package services

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/nived-628/ShopSphere/gateway"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfirmSource identifies which channel delivered a payment confirmation.
type ConfirmSource string

const (
	SourceWebhook        ConfirmSource = "webhook"
	SourceClientRedirect ConfirmSource = "client_redirect"
)

// PaymentCoordinator owns every cross-aggregate write between the Payment
// Record and the Order Record. Nothing else updates the pair directly.
type PaymentCoordinator struct {
	db      *gorm.DB
	gateway gateway.PaymentGateway
	effects []PostCommitEffect
}

// NewPaymentCoordinator wires the coordinator with its collaborators.
func NewPaymentCoordinator(db *gorm.DB, gw gateway.PaymentGateway, effects ...PostCommitEffect) *PaymentCoordinator {
	return &PaymentCoordinator{db: db, gateway: gw, effects: effects}
}

// InitiateRequest carries the full checkout context for one payment attempt.
// OrderID doubles as the caller-supplied idempotency key and the shared order
// number joining the Payment and Order records.
type InitiateRequest struct {
	OrderID       string             `json:"order_id"`
	Amount        float64            `json:"amount"`
	Currency      string             `json:"currency"`
	PaymentMethod string             `json:"payment_method"`
	OrderType     string             `json:"order_type"`
	UserID        uint               `json:"user_id"`
	BillingName   string             `json:"billing_name"`
	BillingEmail  string             `json:"billing_email"`
	BillingPhone  string             `json:"billing_phone"`
	BillingAddr   string             `json:"billing_address"`
	ShippingAddr  string             `json:"shipping_address"`
	Items         []models.OrderItem `json:"items"`
	OrderDetails  interface{}        `json:"order_details"`
	RedirectURL   string             `json:"redirect_url"`
	CancelURL     string             `json:"cancel_url"`

	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	Tax            float64 `json:"tax"`
	ShippingCharge float64 `json:"shipping_charge"`
}

// InitiateResult is handed back to the client to open the gateway checkout.
type InitiateResult struct {
	RemoteOrderID string             `json:"remote_order_id"`
	GatewayKey    string             `json:"gateway_key"`
	Amount        float64            `json:"amount"`
	AmountDisplay string             `json:"amount_display"`
	Currency      string             `json:"currency"`
	OrderNumber   string             `json:"order_number"`
	Resumed       bool               `json:"resumed"`
	AmountCheck   gateway.AmountCheck `json:"amount_check"`
}

// Initiate validates the request, persists the Payment Record, registers the
// order with the gateway and defensively upserts a stub Order Record. A
// gateway failure leaves the Payment Record pending so a retry with the same
// order id resumes instead of double-charging.
func (pc *PaymentCoordinator) Initiate(req InitiateRequest) (*InitiateResult, error) {
	// Callers normally supply the order number as their idempotency key; a
	// server-generated one is the fallback for clients that cannot.
	if req.OrderID == "" {
		req.OrderID = utils.GenerateOrderNumber()
	}
	if missing := req.missingFields(); len(missing) > 0 {
		utils.LogError("Payment initiation missing fields %v", missing)
		return nil, utils.ValidationError("Missing required fields", missing)
	}

	if round2(req.Amount) != round2(req.Subtotal-req.Discount+req.Tax+req.ShippingCharge) {
		utils.LogError("Order %s total %.2f does not match its breakdown", req.OrderID, req.Amount)
		return nil, utils.ValidationError("Total amount does not match subtotal - discount + tax + shipping", nil)
	}

	check := gateway.ValidateAmount(req.Amount, req.PaymentMethod)
	if !check.Valid {
		utils.LogError("Amount %.2f rejected by pre-flight check for order %s", req.Amount, req.OrderID)
		appErr := utils.ValidationError("Amount exceeds payment method limits", map[string]interface{}{
			"amount":                      req.Amount,
			"exceeded_methods":            check.ExceededMethods,
			"recommended_payment_methods": check.RecommendedMethods,
		})
		appErr.Reason = utils.ReasonAmountExceedsLimit
		return nil, appErr
	}

	payment, resumed, err := pc.findOrCreatePayment(req)
	if err != nil {
		return nil, err
	}

	// Insert-only-if-absent stub so the cart-driven order path cannot collide
	// on the shared order number later.
	stub := models.Order{
		OrderNumber:     req.OrderID,
		UserID:          req.UserID,
		BillingName:     req.BillingName,
		BillingEmail:    req.BillingEmail,
		BillingPhone:    req.BillingPhone,
		BillingAddress:  req.BillingAddr,
		ShippingAddress: req.ShippingAddr,
		PaymentMethod:   req.PaymentMethod,
		OrderType:       payment.OrderType,
		Subtotal:        req.Subtotal,
		Discount:        req.Discount,
		Tax:             req.Tax,
		ShippingCharge:  req.ShippingCharge,
		TotalAmount:     req.Amount,
		OrderedAt:       time.Now(),
	}
	if err := pc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_number"}},
		DoNothing: true,
	}).Create(&stub).Error; err != nil {
		utils.LogError("Defensive order upsert failed for %s: %v", req.OrderID, err)
		return nil, utils.WrapError(err, "failed to create order record")
	}

	remoteID := payment.RazorpayOrderID
	if remoteID == "" {
		remoteID, err = pc.gateway.CreateRemoteOrder(req.Amount, payment.Currency, "order_rcptid_"+req.OrderID)
		if err != nil {
			// Stays pending: the same idempotency key can resume safely.
			utils.LogError("Gateway order creation failed for %s, payment left pending: %v", req.OrderID, err)
			return nil, err
		}

		// The remote order id is assigned exactly once.
		res := pc.db.Model(&models.Payment{}).
			Where("order_id = ? AND razorpay_order_id = ''", payment.OrderID).
			Updates(map[string]interface{}{
				"razorpay_order_id": remoteID,
				"status":            models.PaymentStatusProcessing,
			})
		if res.Error != nil {
			return nil, utils.WrapError(res.Error, "failed to store remote order id")
		}
	}

	utils.LogInfo("Payment initiated for order %s, remote order %s (resumed=%v)", req.OrderID, remoteID, resumed)
	return &InitiateResult{
		RemoteOrderID: remoteID,
		GatewayKey:    pc.gateway.Key(),
		Amount:        req.Amount,
		AmountDisplay: fmt.Sprintf("%.2f %s", req.Amount, payment.Currency),
		Currency:      payment.Currency,
		OrderNumber:   req.OrderID,
		Resumed:       resumed,
		AmountCheck:   check,
	}, nil
}

// findOrCreatePayment enforces the create-exactly-once rule. An existing
// record is only reusable when a previous attempt never reached the gateway;
// anything further along is a duplicate initiation and rejected.
func (pc *PaymentCoordinator) findOrCreatePayment(req InitiateRequest) (*models.Payment, bool, error) {
	var existing models.Payment
	err := pc.db.Where("order_id = ?", req.OrderID).First(&existing).Error
	if err == nil {
		if existing.Status == models.PaymentStatusPending && existing.RazorpayOrderID == "" {
			return &existing, true, nil
		}
		utils.LogError("Duplicate payment initiation for order %s (status %s)", req.OrderID, existing.Status)
		return nil, false, utils.ConflictError("A payment already exists for this order id")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, utils.WrapError(err, "failed to look up payment")
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.DetectOrderType(fmt.Sprintf("%v", req.OrderDetails))
	}

	detailsJSON := ""
	if req.OrderDetails != nil {
		if raw, jerr := json.Marshal(req.OrderDetails); jerr == nil {
			detailsJSON = string(raw)
		}
	}

	payment := models.Payment{
		OrderID:        req.OrderID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Status:         models.PaymentStatusPending,
		BillingName:    req.BillingName,
		BillingEmail:   req.BillingEmail,
		BillingPhone:   req.BillingPhone,
		BillingAddress: req.BillingAddr,
		OrderType:      orderType,
		OrderDetails:   detailsJSON,
		UserID:         req.UserID,
	}
	if err := pc.db.Create(&payment).Error; err != nil {
		// Unique index on order_id: a racing initiation lost the insert.
		utils.LogError("Payment insert failed for order %s: %v", req.OrderID, err)
		return nil, false, utils.ConflictError("A payment already exists for this order id")
	}
	return &payment, false, nil
}

// ConfirmSignal is a signature-verified success or failure notification from
// either the webhook or the client redirect.
type ConfirmSignal struct {
	RemoteOrderID string
	PaymentID     string
	Succeeded     bool
	Verified      bool
}

// ConfirmResult reports what the confirmation did.
type ConfirmResult struct {
	Payment      *models.Payment
	AlreadyFinal bool
	Warnings     []string
}

// Confirm applies a verified confirmation to the Payment and Order records.
// The status transition is a conditional write, so the webhook and the client
// redirect may race in either order: the second writer observes zero affected
// rows and short-circuits. Post-commit effects run only for the winner.
func (pc *PaymentCoordinator) Confirm(source ConfirmSource, sig ConfirmSignal) (*ConfirmResult, error) {
	if !sig.Verified {
		utils.LogError("Unverified %s confirmation rejected for remote order %s", source, sig.RemoteOrderID)
		return nil, utils.AuthorizationError("Confirmation signature not verified")
	}

	var payment models.Payment
	if err := pc.db.Where("razorpay_order_id = ?", sig.RemoteOrderID).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("No payment found for remote order id")
		}
		return nil, utils.WrapError(err, "failed to look up payment")
	}

	if payment.IsTerminal() {
		utils.LogInfo("Confirmation via %s for order %s is a no-op, payment already %s", source, payment.OrderID, payment.Status)
		return &ConfirmResult{Payment: &payment, AlreadyFinal: true}, nil
	}

	newStatus := models.PaymentStatusFailed
	if sig.Succeeded {
		newStatus = models.PaymentStatusSuccess
	}
	now := time.Now()

	tx := pc.db.Begin()
	if tx.Error != nil {
		return nil, utils.WrapError(tx.Error, "failed to begin transaction")
	}

	updates := map[string]interface{}{"status": newStatus}
	if sig.Succeeded {
		updates["paid_at"] = &now
	}
	res := tx.Model(&models.Payment{}).
		Where("razorpay_order_id = ? AND status IN ?", sig.RemoteOrderID, models.PaymentNonTerminalStatuses).
		Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		return nil, utils.WrapError(res.Error, "failed to update payment status")
	}
	if res.RowsAffected == 0 {
		// A concurrent confirmation won the race.
		tx.Rollback()
		if err := pc.db.Where("razorpay_order_id = ?", sig.RemoteOrderID).First(&payment).Error; err != nil {
			return nil, utils.WrapError(err, "failed to reload payment")
		}
		utils.LogInfo("Confirmation via %s lost the race for order %s, payment already %s", source, payment.OrderID, payment.Status)
		return &ConfirmResult{Payment: &payment, AlreadyFinal: true}, nil
	}

	var order models.Order
	orderFound := tx.Where("order_number = ?", payment.OrderID).First(&order).Error == nil
	if orderFound {
		newOrderStatus := order.OrderStatus
		orderUpdates := map[string]interface{}{}
		if sig.Succeeded {
			orderUpdates["payment_status"] = models.OrderPaymentPaid
			if order.OrderStatus == models.OrderStatusPending {
				newOrderStatus = models.OrderStatusProcessing
				orderUpdates["order_status"] = newOrderStatus
			}
		} else {
			orderUpdates["payment_status"] = models.OrderPaymentFailed
		}
		if err := tx.Model(&order).Updates(orderUpdates).Error; err != nil {
			tx.Rollback()
			return nil, utils.WrapError(err, "failed to update order payment status")
		}
		history := models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  newOrderStatus,
			Note:    fmt.Sprintf("payment %s via %s", newStatus, source),
			Actor:   "system",
		}
		if err := tx.Create(&history).Error; err != nil {
			tx.Rollback()
			return nil, utils.WrapError(err, "failed to append order history")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.WrapError(err, "failed to commit confirmation")
	}

	payment.Status = newStatus
	if sig.Succeeded {
		payment.PaidAt = &now
	}
	utils.LogInfo("Payment for order %s moved to %s via %s", payment.OrderID, newStatus, source)

	result := &ConfirmResult{Payment: &payment}
	if sig.Succeeded {
		var orderPtr *models.Order
		if orderFound {
			orderPtr = &order
		}
		result.Warnings = RunEffects(pc.effects, &payment, orderPtr)
	}
	return result, nil
}

// Refund moves a successful payment to refunded. Money movement happens on the
// gateway dashboard; this records the decision and mirrors it onto the order.
func (pc *PaymentCoordinator) Refund(orderID, actor, note string) (*models.Payment, error) {
	var payment models.Payment
	if err := pc.db.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("Payment not found")
		}
		return nil, utils.WrapError(err, "failed to look up payment")
	}

	res := pc.db.Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusSuccess).
		Update("status", models.PaymentStatusRefunded)
	if res.Error != nil {
		return nil, utils.WrapError(res.Error, "failed to update payment status")
	}
	if res.RowsAffected == 0 {
		return nil, utils.ConflictError("Only successful payments can be refunded")
	}

	var order models.Order
	if err := pc.db.Where("order_number = ?", orderID).First(&order).Error; err == nil {
		pc.db.Model(&order).Update("payment_status", models.OrderPaymentRefunded)
		pc.db.Create(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  order.OrderStatus,
			Note:    "payment refunded: " + note,
			Actor:   actor,
		})
	}

	RecordAudit(pc.db, actor, "payment.refund", orderID, note)
	payment.Status = models.PaymentStatusRefunded
	return &payment, nil
}

// CancelPayment cancels a payment that has not reached a terminal state.
func (pc *PaymentCoordinator) CancelPayment(orderID string) (*models.Payment, error) {
	res := pc.db.Model(&models.Payment{}).
		Where("order_id = ? AND status IN ?", orderID, models.PaymentNonTerminalStatuses).
		Update("status", models.PaymentStatusCancelled)
	if res.Error != nil {
		return nil, utils.WrapError(res.Error, "failed to cancel payment")
	}
	if res.RowsAffected == 0 {
		var payment models.Payment
		if err := pc.db.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
			return nil, utils.NotFoundError("Payment not found")
		}
		return nil, utils.ConflictError("Payment is already in a terminal state")
	}
	var payment models.Payment
	if err := pc.db.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, utils.WrapError(err, "failed to reload payment")
	}
	return &payment, nil
}

func (r InitiateRequest) missingFields() []string {
	missing := []string{}
	if r.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if r.Currency == "" {
		missing = append(missing, "currency")
	}
	if r.BillingName == "" {
		missing = append(missing, "billing_name")
	}
	if r.BillingEmail == "" {
		missing = append(missing, "billing_email")
	}
	return missing
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
