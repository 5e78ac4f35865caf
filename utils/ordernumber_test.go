package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber()
		assert.True(t, strings.HasPrefix(n, "ORD-"))
		assert.Len(t, n, 16)
		assert.Equal(t, strings.ToUpper(n), n)
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}

func TestClampPagination(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-3, 0, 1, 10},
		{2, 101, 2, 10},
		{5, 100, 5, 100},
	}

	for _, tt := range tests {
		page, limit := ClampPagination(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantLimit, limit)
	}
}
