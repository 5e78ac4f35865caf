package services

import (
	"testing"

	"github.com/nived-628/ShopSphere/models"
	"github.com/nived-628/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCourierStatus(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"order_placed", models.TrackingStatusOrderPlaced},
		{"packed", models.TrackingStatusPackaging},
		{"packaging", models.TrackingStatusPackaging},
		{"in_transit", models.TrackingStatusOnTheRoad},
		{"on_the_road", models.TrackingStatusOnTheRoad},
		{"shipped", models.TrackingStatusOnTheRoad},
		{"delivered", models.TrackingStatusDelivered},
		{"cancelled", models.TrackingStatusCancelled},
		{"rto", models.TrackingStatusCancelled},
	}

	for _, tt := range tests {
		got, err := MapCourierStatus(tt.code)
		require.NoError(t, err, "code %s", tt.code)
		assert.Equal(t, tt.want, got, "code %s", tt.code)
	}
}

func TestMapCourierStatusUnknownCode(t *testing.T) {
	for _, code := range []string{"lost_in_warehouse", "DELIVERED", ""} {
		got, err := MapCourierStatus(code)
		require.Error(t, err, "code %q must not map", code)
		assert.Empty(t, got)
		assert.True(t, utils.IsValidationError(err))
	}
}
