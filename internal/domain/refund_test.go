package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundAmount(t *testing.T) {
	total := int64(1000)

	tests := []struct {
		name     string
		leadTime time.Duration
		want     int64
	}{
		{name: "well ahead", leadTime: 72 * time.Hour, want: 900},
		{name: "exactly 24h pays full tier", leadTime: 24 * time.Hour, want: 900},
		{name: "just under 24h", leadTime: 24*time.Hour - time.Minute, want: 500},
		{name: "exactly 6h", leadTime: 6 * time.Hour, want: 500},
		{name: "just under 6h", leadTime: 6*time.Hour - time.Minute, want: 250},
		{name: "exactly 2h", leadTime: 2 * time.Hour, want: 250},
		{name: "just under 2h", leadTime: 2*time.Hour - time.Minute, want: 0},
		{name: "one hour before", leadTime: time.Hour, want: 0},
		{name: "zero lead time", leadTime: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundAmount(total, tt.leadTime))
		})
	}
}

func TestRefundAmount_RoundsHalfUp(t *testing.T) {
	// 999 * 0.25 = 249.75 -> 250
	assert.Equal(t, int64(250), RefundAmount(999, 3*time.Hour))
	// 999 * 0.9 = 899.1 -> 899
	assert.Equal(t, int64(899), RefundAmount(999, 48*time.Hour))
}
