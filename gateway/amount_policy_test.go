package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name            string
		amount          float64
		method          string
		wantValid       bool
		wantExceeded    []string
		wantRecommended []string
	}{
		{
			name:            "above platform ceiling",
			amount:          600000,
			method:          MethodNetbanking,
			wantValid:       false,
			wantExceeded:    []string{},
			wantRecommended: []string{MethodNetbanking, MethodCards},
		},
		{
			name:            "large amount within upi ceiling",
			amount:          88500,
			method:          MethodUPI,
			wantValid:       true,
			wantExceeded:    []string{},
			wantRecommended: []string{},
		},
		{
			name:            "amount over upi ceiling",
			amount:          150000,
			method:          MethodUPI,
			wantValid:       false,
			wantExceeded:    []string{MethodUPI},
			wantRecommended: []string{MethodNetbanking, MethodCards},
		},
		{
			name:            "amount over wallet ceiling recommends upi",
			amount:          50000,
			method:          MethodWallet,
			wantValid:       false,
			wantExceeded:    []string{MethodWallet},
			wantRecommended: []string{MethodUPI, MethodNetbanking, MethodCards},
		},
		{
			name:            "cod within its ceiling",
			amount:          9999.99,
			method:          MethodCOD,
			wantValid:       true,
			wantExceeded:    []string{},
			wantRecommended: []string{},
		},
		{
			name:            "cod over its ceiling keeps cheap alternatives",
			amount:          15000,
			method:          MethodCOD,
			wantValid:       false,
			wantExceeded:    []string{MethodCOD},
			wantRecommended: []string{MethodWallet, MethodUPI, MethodNetbanking, MethodCards},
		},
		{
			name:            "no method applies platform ceiling only",
			amount:          450000,
			method:          "",
			wantValid:       true,
			wantExceeded:    []string{},
			wantRecommended: []string{},
		},
		{
			name:            "unknown method bounded by platform ceiling",
			amount:          450000,
			method:          MethodCards,
			wantValid:       true,
			wantExceeded:    []string{},
			wantRecommended: []string{},
		},
		{
			name:            "exactly the platform ceiling passes",
			amount:          500000,
			method:          MethodNetbanking,
			wantValid:       true,
			wantExceeded:    []string{},
			wantRecommended: []string{},
		},
		{
			name:            "exactly the method ceiling passes",
			amount:          100000,
			method:          MethodUPI,
			wantValid:       true,
			wantExceeded:    []string{},
			wantRecommended: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidateAmount(tt.amount, tt.method)
			assert.Equal(t, tt.wantValid, check.Valid)
			assert.Equal(t, tt.wantExceeded, check.ExceededMethods)
			assert.Equal(t, tt.wantRecommended, check.RecommendedMethods)
		})
	}
}
