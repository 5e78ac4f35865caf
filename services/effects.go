package services

import (
	"fmt"

	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
	"gorm.io/gorm"
)

// PostCommitEffect is a downstream side effect of a successful payment. Each
// effect runs after the state transition is durably committed; a failure is
// captured as a warning and never rolls the transition back.
type PostCommitEffect interface {
	Name() string
	Apply(payment *models.Payment, order *models.Order) error
}

// RunEffects applies every effect in order, individually recovered, and
// returns one warning per failed effect. Each failure is logged with enough
// context to be replayed manually.
func RunEffects(effects []PostCommitEffect, payment *models.Payment, order *models.Order) []string {
	warnings := []string{}
	for _, effect := range effects {
		if err := applyEffect(effect, payment, order); err != nil {
			utils.LogError("Post-commit effect %q failed for payment %d (order %s): %v",
				effect.Name(), payment.ID, payment.OrderID, err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", effect.Name(), err))
		}
	}
	return warnings
}

func applyEffect(effect PostCommitEffect, payment *models.Payment, order *models.Order) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return effect.Apply(payment, order)
}

// TrackingEffect creates the Tracking Record once payment is confirmed.
type TrackingEffect struct {
	Bridge *TrackingBridge
}

func (e *TrackingEffect) Name() string { return "tracking" }

func (e *TrackingEffect) Apply(payment *models.Payment, order *models.Order) error {
	return e.Bridge.CreateForOrder(payment.OrderID, payment.OrderType)
}

// NotificationEffect emails the customer a payment confirmation.
type NotificationEffect struct{}

func (e *NotificationEffect) Name() string { return "notification" }

func (e *NotificationEffect) Apply(payment *models.Payment, order *models.Order) error {
	if payment.BillingEmail == "" {
		return fmt.Errorf("no billing email on payment record")
	}
	return utils.SendPaymentConfirmation(payment.BillingEmail, payment.OrderID, payment.Amount)
}

// AuditEffect records the confirmation in the audit log.
type AuditEffect struct {
	DB *gorm.DB
}

func (e *AuditEffect) Name() string { return "audit" }

func (e *AuditEffect) Apply(payment *models.Payment, order *models.Order) error {
	return RecordAudit(e.DB, "system", "payment.confirmed", payment.OrderID,
		fmt.Sprintf("amount %.2f %s", payment.Amount, payment.Currency))
}

// RecordAudit appends one audit log row.
func RecordAudit(db *gorm.DB, actor, action, orderNumber, detail string) error {
	entry := models.AuditLog{
		Actor:       actor,
		Action:      action,
		OrderNumber: orderNumber,
		Detail:      detail,
	}
	if err := db.Create(&entry).Error; err != nil {
		return utils.WrapError(err, "failed to write audit log")
	}
	utils.LogInfo("Audit: %s %s on %s (%s)", actor, action, orderNumber, detail)
	return nil
}
