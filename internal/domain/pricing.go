package domain

import "github.com/shopspring/decimal"

// Time-of-day price multipliers
// Hours 6-11 are the morning peak, 17-22 the evening peak,
// 23 and 0-5 get the late-night discount, everything else is base price
var (
	multiplierMorningPeak = decimal.NewFromFloat(1.2)
	multiplierEveningPeak = decimal.NewFromFloat(1.5)
	multiplierLateNight   = decimal.NewFromFloat(0.8)
	multiplierBase        = decimal.NewFromInt(1)
)

// MultiplierForHour возвращает ценовой множитель для часа суток (0-23)
func MultiplierForHour(hour int) decimal.Decimal {
	switch {
	case hour >= MorningPeakStartHour && hour <= MorningPeakEndHour:
		return multiplierMorningPeak
	case hour >= EveningPeakStartHour && hour <= EveningPeakEndHour:
		return multiplierEveningPeak
	case hour == 23 || hour < MorningPeakStartHour:
		return multiplierLateNight
	default:
		return multiplierBase
	}
}

// IsPeakHour returns true for hours counted into the peak-hour report buckets
func IsPeakHour(hour int) bool {
	return (hour >= MorningPeakStartHour && hour <= MorningPeakEndHour) ||
		(hour >= EveningPeakStartHour && hour <= EveningPeakEndHour)
}

// SlotPrice вычисляет цену слота: round(basePrice * multiplier)
// Округление half-up до целых денежных единиц
func SlotPrice(basePrice int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(basePrice).Mul(multiplier).Round(0).IntPart()
}
