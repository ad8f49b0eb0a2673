package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refund schedule by lead time (hours until booking start)
// Boundaries are inclusive on the higher tier: exactly 24h pays 90%
var (
	refundFull    = decimal.NewFromFloat(0.90) // >= 24h
	refundHalf    = decimal.NewFromFloat(0.50) // >= 6h
	refundQuarter = decimal.NewFromFloat(0.25) // >= 2h
)

// RefundPercent возвращает долю возврата по времени до начала бронирования
func RefundPercent(leadTime time.Duration) decimal.Decimal {
	switch {
	case leadTime >= 24*time.Hour:
		return refundFull
	case leadTime >= 6*time.Hour:
		return refundHalf
	case leadTime >= 2*time.Hour:
		return refundQuarter
	default:
		return decimal.Zero
	}
}

// RefundAmount вычисляет сумму возврата: round(totalPrice * percent)
// Округление half-up до целых денежных единиц
func RefundAmount(totalPrice int64, leadTime time.Duration) int64 {
	return decimal.NewFromInt(totalPrice).Mul(RefundPercent(leadTime)).Round(0).IntPart()
}
