package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMultiplierForHour(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want string
	}{
		{name: "late night start of day", hour: 0, want: "0.8"},
		{name: "late night before morning peak", hour: 5, want: "0.8"},
		{name: "morning peak start", hour: 6, want: "1.2"},
		{name: "morning peak end", hour: 11, want: "1.2"},
		{name: "midday base", hour: 12, want: "1"},
		{name: "afternoon base", hour: 16, want: "1"},
		{name: "evening peak start", hour: 17, want: "1.5"},
		{name: "evening peak end", hour: 22, want: "1.5"},
		{name: "late night end of day", hour: 23, want: "0.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MultiplierForHour(tt.hour)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"hour %d: got %s, want %s", tt.hour, got, tt.want)
		})
	}
}

func TestSlotPrice(t *testing.T) {
	base := int64(1000)

	assert.Equal(t, int64(1200), SlotPrice(base, MultiplierForHour(8)))
	assert.Equal(t, int64(1500), SlotPrice(base, MultiplierForHour(19)))
	assert.Equal(t, int64(800), SlotPrice(base, MultiplierForHour(2)))
	assert.Equal(t, int64(1000), SlotPrice(base, MultiplierForHour(14)))
}

func TestSlotPrice_RoundsHalfUp(t *testing.T) {
	// 999 * 1.5 = 1498.5 -> 1499
	assert.Equal(t, int64(1499), SlotPrice(999, decimal.NewFromFloat(1.5)))
	// 999 * 0.8 = 799.2 -> 799
	assert.Equal(t, int64(799), SlotPrice(999, decimal.NewFromFloat(0.8)))
}

func TestSlotPrice_Deterministic(t *testing.T) {
	// Одна и та же пара (base, hour) всегда дает одну цену
	for i := 0; i < 100; i++ {
		assert.Equal(t, int64(1200), SlotPrice(1000, MultiplierForHour(8)))
	}
}

func TestIsPeakHour(t *testing.T) {
	peaks := map[int]bool{
		5: false, 6: true, 11: true, 12: false,
		16: false, 17: true, 22: true, 23: false, 0: false,
	}
	for hour, want := range peaks {
		assert.Equal(t, want, IsPeakHour(hour), "hour %d", hour)
	}
}
