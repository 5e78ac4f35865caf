package services

import (
	"net/http"
	"testing"

	"github.com/nived-628/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInitiateRequest() InitiateRequest {
	return InitiateRequest{
		OrderID:       "ORD-TEST12345678",
		Amount:        1180,
		Currency:      "INR",
		PaymentMethod: "upi",
		BillingName:   "Asha Nair",
		BillingEmail:  "asha@example.com",

		Subtotal:       1000,
		Discount:       20,
		Tax:            150,
		ShippingCharge: 50,
	}
}

func TestInitiateRejectsMissingFields(t *testing.T) {
	pc := NewPaymentCoordinator(nil, nil)

	_, err := pc.Initiate(InitiateRequest{})
	require.Error(t, err)

	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.ElementsMatch(t,
		[]string{"amount", "currency", "billing_name", "billing_email"},
		appErr.Details)
}

func TestInitiateRejectsMismatchedTotal(t *testing.T) {
	pc := NewPaymentCoordinator(nil, nil)

	req := validInitiateRequest()
	req.Amount = 1200

	_, err := pc.Initiate(req)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestInitiateRejectsAmountOverMethodCeiling(t *testing.T) {
	pc := NewPaymentCoordinator(nil, nil)

	req := validInitiateRequest()
	req.PaymentMethod = "wallet"
	req.Subtotal = 25000
	req.Discount = 0
	req.Tax = 0
	req.ShippingCharge = 0
	req.Amount = 25000

	_, err := pc.Initiate(req)
	require.Error(t, err)

	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, utils.ReasonAmountExceedsLimit, appErr.Reason)

	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"wallet"}, details["exceeded_methods"])
	assert.NotEmpty(t, details["recommended_payment_methods"])
}

func TestConfirmRejectsUnverifiedSignal(t *testing.T) {
	pc := NewPaymentCoordinator(nil, nil)

	_, err := pc.Confirm(SourceWebhook, ConfirmSignal{
		RemoteOrderID: "order_rzp1",
		PaymentID:     "pay_rzp1",
		Succeeded:     true,
		Verified:      false,
	})
	require.Error(t, err)

	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1180.0, round2(1000.10-20+149.90+50))
	assert.Equal(t, 0.3, round2(0.1+0.2))
	assert.Equal(t, 19.99, round2(19.985001))
}
