package domain

import "time"

// DailyReport read-only дневная сводка по площадке
// Всегда пересчитывается из актуального состояния слотов и бронирований;
// счетчики на слотах используются только как кэш и не являются источником истины
type DailyReport struct {
	TurfID int64     `json:"turfId"`
	Date   time.Time `json:"date"`

	TotalSlots       int `json:"totalSlots"`
	BookedSlots      int `json:"bookedSlots"`
	AvailableSlots   int `json:"availableSlots"`
	UnavailableSlots int `json:"unavailableSlots"` // unavailable + maintenance

	OccupancyRate float64 `json:"occupancyRate"` // percent, 0 when no slots generated

	TotalRevenue int64 `json:"totalRevenue"` // sum of totalPrice over non-cancelled bookings

	PeakHourBookings int `json:"peakHourBookings"`
	OffPeakBookings  int `json:"offPeakBookings"`

	TotalBookings     int     `json:"totalBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	CancellationRate  float64 `json:"cancellationRate"` // percent, 0 when no bookings

	GeneratedAt time.Time `json:"generatedAt"`
}
