package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderNumber returns a human-shareable order number. Uniqueness is
// enforced by the database index on orders.order_number; the uuid fragment
// keeps collisions out of normal operation.
func GenerateOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + raw[:12]
}

// ClampPagination normalizes page/limit values into their allowed ranges.
func ClampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
