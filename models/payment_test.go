package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentIsTerminal(t *testing.T) {
	terminal := []string{PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded}
	for _, status := range terminal {
		p := Payment{Status: status}
		assert.True(t, p.IsTerminal(), "status %s", status)
	}

	for _, status := range PaymentNonTerminalStatuses {
		p := Payment{Status: status}
		assert.False(t, p.IsTerminal(), "status %s", status)
	}
}

func TestDetectOrderType(t *testing.T) {
	assert.Equal(t, OrderTypeCustomized, DetectOrderType(`{"items":[{"sku":"MUG-1","customized":true}]}`))
	assert.Equal(t, OrderTypeCustomized, DetectOrderType("custom-order ref 42"))
	assert.Equal(t, OrderTypeCustomized, DetectOrderType("CUSTOMIZED engraving"))
	assert.Equal(t, OrderTypeNormal, DetectOrderType(`{"items":[{"sku":"BOOK-1"}]}`))
	assert.Equal(t, OrderTypeNormal, DetectOrderType(""))
}
