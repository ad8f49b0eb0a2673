package domain

// Slot layout constants
const (
	SlotsPerDay         = 24 // one slot per hour of the day
	SlotDurationMinutes = 60

	DefaultMaxBookings = 1
)

// Pricing curve boundaries (hour of day, inclusive)
const (
	MorningPeakStartHour = 6
	MorningPeakEndHour   = 11
	EveningPeakStartHour = 17
	EveningPeakEndHour   = 22
)

// Business validation constants
const (
	MinPriceMultiplier = 0.5
	MaxPriceMultiplier = 3.0

	MaxGenerationRangeDays = 30 // bulk pre-generation cap per request

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Используется при подсчёте выручки и занятости
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// TerminalStatuses статусы, из которых бронирование не переводится дальше
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
