package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/nived-628/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int
	}{
		{100, 10000},
		{88500, 8850000},
		{0.01, 1},
		{0, 0},
		{1234.56, 123456},
		// 19.99 * 100 is 1998.9999... in float64; rounding must correct it
		{19.99, 1999},
		{0.1 + 0.2, 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMinorUnits(tt.amount), "amount %v", tt.amount)
	}
}

func sign(secret string, data []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	g := NewRazorpayGateway("key_test", "secret_test", "whsecret_test")

	valid := sign("secret_test", []byte("order_rzp123|pay_rzp456"))

	assert.True(t, g.VerifyPaymentSignature("order_rzp123", "pay_rzp456", valid))
	assert.False(t, g.VerifyPaymentSignature("order_rzp123", "pay_other", valid), "signature bound to payment id")
	assert.False(t, g.VerifyPaymentSignature("order_other", "pay_rzp456", valid), "signature bound to order id")
	assert.False(t, g.VerifyPaymentSignature("order_rzp123", "pay_rzp456", valid[:len(valid)-1]+"0"), "tampered signature")
	assert.False(t, g.VerifyPaymentSignature("order_rzp123", "pay_rzp456", ""), "empty signature")
}

func TestVerifyWebhookSignature(t *testing.T) {
	g := NewRazorpayGateway("key_test", "secret_test", "whsecret_test")

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)
	valid := sign("whsecret_test", body)

	assert.True(t, g.VerifyWebhookSignature(body, valid))

	// Any change to the raw body invalidates the signature
	tampered := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_2"}}}}`)
	assert.False(t, g.VerifyWebhookSignature(tampered, valid))

	// Webhook and payment signatures use different secrets
	assert.False(t, g.VerifyWebhookSignature(body, sign("secret_test", body)))
}

func TestVerifySignatureWithoutSecret(t *testing.T) {
	g := NewRazorpayGateway("", "", "")

	body := []byte(`{}`)
	assert.False(t, g.VerifyWebhookSignature(body, sign("", body)), "missing secret never verifies")
	assert.False(t, g.VerifyPaymentSignature("o", "p", ""))
}

func TestCreateRemoteOrderWithoutCredentials(t *testing.T) {
	g := NewRazorpayGateway("", "", "")

	_, err := g.CreateRemoteOrder(100, "INR", "ORD-1")
	require.Error(t, err)

	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, utils.ReasonGatewayConfig, appErr.Reason)
}
