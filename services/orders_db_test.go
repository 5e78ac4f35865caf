package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/nived-628/ShopSphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// emptySchemaDB opens a database with no tables, so every write against it fails.
func emptySchemaDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedProcessingOrder(t *testing.T, db *gorm.DB, orderNumber string) *models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:   orderNumber,
		UserID:        1,
		BillingName:   "Asha Nair",
		BillingEmail:  "asha@example.com",
		OrderStatus:   models.OrderStatusProcessing,
		PaymentStatus: models.OrderPaymentPaid,
		TotalAmount:   1180,
		OrderedAt:     time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func TestShipAssignsDocketToTracking(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, NewTrackingBridge(db, nil))
	seedProcessingOrder(t, db, "ORD-SHIP00000001")

	order, warnings, err := svc.Ship("ORD-SHIP00000001", "DKT-1001", "bluedart", "ops@shopsphere.com")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, models.OrderStatusShipped, order.OrderStatus)

	var tracking models.Tracking
	require.NoError(t, db.Where("order_number = ?", "ORD-SHIP00000001").First(&tracking).Error)
	assert.Equal(t, "DKT-1001", tracking.DocketNumber)
	assert.Equal(t, models.TrackingStatusOnTheRoad, tracking.Status)
}

func TestShipSurfacesDocketPushFailureAsWarning(t *testing.T) {
	db := newTestDB(t)
	// Tracking lives behind a broken store; the shipment itself must still
	// commit and the caller must hear about the degraded step.
	svc := NewOrderService(db, NewTrackingBridge(emptySchemaDB(t), nil))
	seedProcessingOrder(t, db, "ORD-SHIP00000002")

	order, warnings, err := svc.Ship("ORD-SHIP00000002", "DKT-1002", "bluedart", "ops@shopsphere.com")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.OrderStatus)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "tracking:")

	var reloaded models.Order
	require.NoError(t, db.Where("order_number = ?", "ORD-SHIP00000002").First(&reloaded).Error)
	assert.Equal(t, models.OrderStatusShipped, reloaded.OrderStatus)
}

func TestShipAlreadyShippedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db, NewTrackingBridge(db, nil))
	seedProcessingOrder(t, db, "ORD-SHIP00000003")

	_, _, err := svc.Ship("ORD-SHIP00000003", "DKT-1003", "bluedart", "ops@shopsphere.com")
	require.NoError(t, err)

	order, warnings, err := svc.Ship("ORD-SHIP00000003", "DKT-1003", "bluedart", "ops@shopsphere.com")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, models.OrderStatusShipped, order.OrderStatus)
}
