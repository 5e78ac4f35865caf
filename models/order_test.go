package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderIsTerminal(t *testing.T) {
	for _, status := range OrderTerminalStatuses {
		o := Order{OrderStatus: status}
		assert.True(t, o.IsTerminal(), "status %s", status)
	}

	for _, status := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped} {
		o := Order{OrderStatus: status}
		assert.False(t, o.IsTerminal(), "status %s", status)
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range ValidOrderStatuses {
		assert.True(t, IsValidOrderStatus(status), "status %s", status)
	}

	assert.False(t, IsValidOrderStatus("dispatched"))
	assert.False(t, IsValidOrderStatus("Pending"))
	assert.False(t, IsValidOrderStatus(""))
}
