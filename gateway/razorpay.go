package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/nived-628/ShopSphere/utils"
	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway wraps the external payment provider. The coordinator receives
// this as an interface so tests can substitute a fake.
type PaymentGateway interface {
	CreateRemoteOrder(amount float64, currency, receipt string) (string, error)
	VerifyWebhookSignature(payload []byte, signature string) bool
	VerifyPaymentSignature(remoteOrderID, paymentID, signature string) bool
	Key() string
}

// RazorpayGateway talks to Razorpay. Amounts cross the boundary in minor units
// (paise); the conversion happens here exactly once.
type RazorpayGateway struct {
	key           string
	secret        string
	webhookSecret string
	client        *razorpay.Client
}

// NewRazorpayGateway builds a gateway from credentials. Missing credentials are
// tolerated at construction and rejected on first use so the server can still
// boot for non-payment work.
func NewRazorpayGateway(key, secret, webhookSecret string) *RazorpayGateway {
	g := &RazorpayGateway{key: key, secret: secret, webhookSecret: webhookSecret}
	if key != "" && secret != "" {
		g.client = razorpay.NewClient(key, secret)
	}
	return g
}

// Key returns the publishable key for the client-side checkout form.
func (g *RazorpayGateway) Key() string {
	return g.key
}

// ToMinorUnits converts a decimal currency amount to the gateway's minor-unit
// representation. Callers must convert exactly once; retries reuse the stored
// remote order rather than re-multiplying.
func ToMinorUnits(amount float64) int {
	return int(math.Round(amount * 100))
}

// CreateRemoteOrder registers the order with Razorpay and returns its id.
func (g *RazorpayGateway) CreateRemoteOrder(amount float64, currency, receipt string) (string, error) {
	if g.client == nil {
		utils.LogError("Razorpay credentials missing, cannot create remote order")
		return "", utils.ExternalServiceError("Payment gateway is not configured", utils.ReasonGatewayConfig, nil)
	}

	orderData := map[string]interface{}{
		"amount":          ToMinorUnits(amount),
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	rzOrder, err := g.client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Razorpay order creation failed for receipt %s: %v", receipt, err)
		return "", utils.ExternalServiceError("Failed to create gateway order", utils.ReasonGatewayRejected, err)
	}

	remoteID, ok := rzOrder["id"].(string)
	if !ok || remoteID == "" {
		return "", utils.ExternalServiceError("Gateway returned no order id", utils.ReasonGatewayRejected, fmt.Errorf("unexpected response: %v", rzOrder["id"]))
	}
	utils.LogInfo("Created Razorpay order %s for receipt %s", remoteID, receipt)
	return remoteID, nil
}

// VerifyWebhookSignature checks the HMAC signature over the untouched webhook
// body. The comparison is constant-time.
func (g *RazorpayGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return verifyHMAC(payload, signature, g.webhookSecret)
}

// VerifyPaymentSignature checks the signature Razorpay hands to the client
// redirect, computed over "remoteOrderID|paymentID".
func (g *RazorpayGateway) VerifyPaymentSignature(remoteOrderID, paymentID, signature string) bool {
	data := remoteOrderID + "|" + paymentID
	return verifyHMAC([]byte(data), signature, g.secret)
}

func verifyHMAC(payload []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
