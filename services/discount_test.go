package services

import (
	"testing"

	"github.com/nived-628/ShopSphere/models"
	"github.com/stretchr/testify/assert"
)

func TestCouponDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   models.Coupon
		subtotal float64
		want     float64
	}{
		{
			name:     "flat discount",
			coupon:   models.Coupon{Type: "flat", Value: 200},
			subtotal: 1000,
			want:     200,
		},
		{
			name:     "flat discount never exceeds subtotal",
			coupon:   models.Coupon{Type: "flat", Value: 500},
			subtotal: 300,
			want:     300,
		},
		{
			name:     "percent discount",
			coupon:   models.Coupon{Type: "percent", Value: 10},
			subtotal: 2000,
			want:     200,
		},
		{
			name:     "percent discount capped by max_discount",
			coupon:   models.Coupon{Type: "percent", Value: 50, MaxDiscount: 300},
			subtotal: 2000,
			want:     300,
		},
		{
			name:     "percent discount without cap",
			coupon:   models.Coupon{Type: "percent", Value: 50},
			subtotal: 2000,
			want:     1000,
		},
		{
			name:     "full percent discount bounded by subtotal",
			coupon:   models.Coupon{Type: "percent", Value: 150},
			subtotal: 400,
			want:     400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CouponDiscount(&tt.coupon, tt.subtotal), 0.001)
		})
	}
}
