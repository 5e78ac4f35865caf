package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nived-628/ShopSphere/services"
	"github.com/nived-628/ShopSphere/utils"
)

// razorpayEvent is the subset of the webhook payload this service reads.
type razorpayEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// POST /v1/payment/webhook
//
// The body is read as untouched bytes and verified before any parsing. The
// endpoint is idempotent: redelivery of an already-applied event returns 200.
func PaymentWebhook(c *gin.Context) {
	utils.LogInfo("PaymentWebhook called")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.LogError("Failed to read webhook body: %v", err)
		utils.BadRequest(c, "Unable to read request body", nil)
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !paymentGateway.VerifyWebhookSignature(body, signature) {
		utils.LogError("Webhook signature verification failed")
		utils.BadRequest(c, "Invalid webhook signature", nil)
		return
	}

	var event razorpayEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.LogError("Failed to parse webhook payload: %v", err)
		utils.BadRequest(c, "Malformed webhook payload", nil)
		return
	}

	var succeeded bool
	switch event.Event {
	case "payment.captured", "order.paid":
		succeeded = true
	case "payment.failed":
		succeeded = false
	default:
		// Events outside the payment lifecycle are acknowledged and dropped.
		utils.LogDebug("Ignoring webhook event %s", event.Event)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	result, err := coordinator.Confirm(services.SourceWebhook, services.ConfirmSignal{
		RemoteOrderID: event.Payload.Payment.Entity.OrderID,
		PaymentID:     event.Payload.Payment.Entity.ID,
		Succeeded:     succeeded,
		Verified:      true,
	})
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.NotFound(c, "No payment found for this order")
			return
		}
		utils.LogError("Webhook confirmation failed for remote order %s: %v", event.Payload.Payment.Entity.OrderID, err)
		utils.AppErrorResponse(c, err)
		return
	}

	if len(result.Warnings) > 0 {
		utils.LogError("Webhook processed for order %s with degraded effects: %v", result.Payment.OrderID, result.Warnings)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"already_final": result.AlreadyFinal,
	})
}
