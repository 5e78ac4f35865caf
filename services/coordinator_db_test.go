package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Payment{},
		&models.Tracking{},
		&models.TrackingHistory{},
		&models.AuditLog{},
	))
	return db
}

type fakeGateway struct {
	createErr   error
	createCalls int
}

func (g *fakeGateway) CreateRemoteOrder(amount float64, currency, receipt string) (string, error) {
	g.createCalls++
	if g.createErr != nil {
		return "", g.createErr
	}
	return fmt.Sprintf("order_rzp_%d", g.createCalls), nil
}

func (g *fakeGateway) VerifyWebhookSignature(payload []byte, signature string) bool { return true }

func (g *fakeGateway) VerifyPaymentSignature(remoteOrderID, paymentID, signature string) bool {
	return true
}

func (g *fakeGateway) Key() string { return "key_test" }

func paymentCount(t *testing.T, db *gorm.DB, orderID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", orderID).Count(&n).Error)
	return n
}

func TestInitiateDuplicateOrderID(t *testing.T) {
	db := newTestDB(t)
	pc := NewPaymentCoordinator(db, &fakeGateway{})

	req := validInitiateRequest()
	first, err := pc.Initiate(req)
	require.NoError(t, err)
	assert.False(t, first.Resumed)
	assert.NotEmpty(t, first.RemoteOrderID)

	_, err = pc.Initiate(req)
	require.Error(t, err)
	assert.True(t, utils.IsConflictError(err))

	assert.EqualValues(t, 1, paymentCount(t, db, req.OrderID))
}

func TestInitiateResumesAfterGatewayFailure(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{createErr: fmt.Errorf("gateway down")}
	pc := NewPaymentCoordinator(db, gw)

	req := validInitiateRequest()
	_, err := pc.Initiate(req)
	require.Error(t, err)

	// Failed attempt stays pending with no remote order, so the same order id
	// can resume instead of double-charging.
	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", req.OrderID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Empty(t, payment.RazorpayOrderID)

	gw.createErr = nil
	result, err := pc.Initiate(req)
	require.NoError(t, err)
	assert.True(t, result.Resumed)
	assert.NotEmpty(t, result.RemoteOrderID)

	assert.EqualValues(t, 1, paymentCount(t, db, req.OrderID))
	require.NoError(t, db.Where("order_id = ?", req.OrderID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusProcessing, payment.Status)
	assert.Equal(t, result.RemoteOrderID, payment.RazorpayOrderID)
}

func TestInitiateGeneratesOrderNumberWhenMissing(t *testing.T) {
	db := newTestDB(t)
	pc := NewPaymentCoordinator(db, &fakeGateway{})

	req := validInitiateRequest()
	req.OrderID = ""

	result, err := pc.Initiate(req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.OrderNumber, "ORD-"))
	assert.EqualValues(t, 1, paymentCount(t, db, result.OrderNumber))
}

func TestConfirmTwiceProducesOneSuccessAndOneTrackingRecord(t *testing.T) {
	db := newTestDB(t)
	bridge := NewTrackingBridge(db, nil)
	pc := NewPaymentCoordinator(db, &fakeGateway{}, &TrackingEffect{Bridge: bridge})

	req := validInitiateRequest()
	initiated, err := pc.Initiate(req)
	require.NoError(t, err)

	signal := ConfirmSignal{
		RemoteOrderID: initiated.RemoteOrderID,
		PaymentID:     "pay_rzp_1",
		Succeeded:     true,
		Verified:      true,
	}

	first, err := pc.Confirm(SourceWebhook, signal)
	require.NoError(t, err)
	assert.False(t, first.AlreadyFinal)
	assert.Equal(t, models.PaymentStatusSuccess, first.Payment.Status)
	assert.Empty(t, first.Warnings)

	// The losing channel observes the terminal state and changes nothing.
	second, err := pc.Confirm(SourceClientRedirect, signal)
	require.NoError(t, err)
	assert.True(t, second.AlreadyFinal)
	assert.Empty(t, second.Warnings)

	var trackingCount int64
	require.NoError(t, db.Model(&models.Tracking{}).Where("order_number = ?", req.OrderID).Count(&trackingCount).Error)
	assert.EqualValues(t, 1, trackingCount)

	var order models.Order
	require.NoError(t, db.Where("order_number = ?", req.OrderID).First(&order).Error)
	assert.Equal(t, models.OrderPaymentPaid, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, order.OrderStatus)

	// History captures the state the confirmation moved the order into.
	var history models.OrderStatusHistory
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id DESC").First(&history).Error)
	assert.Equal(t, models.OrderStatusProcessing, history.Status)
	assert.Contains(t, history.Note, "via webhook")
}

func TestConfirmAfterTerminalIsNoOp(t *testing.T) {
	db := newTestDB(t)
	bridge := NewTrackingBridge(db, nil)
	pc := NewPaymentCoordinator(db, &fakeGateway{}, &TrackingEffect{Bridge: bridge})

	req := validInitiateRequest()
	initiated, err := pc.Initiate(req)
	require.NoError(t, err)

	failed, err := pc.Confirm(SourceWebhook, ConfirmSignal{
		RemoteOrderID: initiated.RemoteOrderID,
		PaymentID:     "pay_rzp_1",
		Succeeded:     false,
		Verified:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, failed.Payment.Status)

	// A late success signal cannot resurrect a failed payment.
	late, err := pc.Confirm(SourceClientRedirect, ConfirmSignal{
		RemoteOrderID: initiated.RemoteOrderID,
		PaymentID:     "pay_rzp_1",
		Succeeded:     true,
		Verified:      true,
	})
	require.NoError(t, err)
	assert.True(t, late.AlreadyFinal)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", req.OrderID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)

	var trackingCount int64
	require.NoError(t, db.Model(&models.Tracking{}).Where("order_number = ?", req.OrderID).Count(&trackingCount).Error)
	assert.Zero(t, trackingCount, "effects must not run for a failed payment")

	var order models.Order
	require.NoError(t, db.Where("order_number = ?", req.OrderID).First(&order).Error)
	assert.Equal(t, models.OrderPaymentFailed, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
}
