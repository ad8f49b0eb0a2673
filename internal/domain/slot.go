package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// SlotStatus represents the status of a time slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
	SlotMaintenance SlotStatus = "maintenance"
)

// IsValid returns true if the status is one of the known slot statuses
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotAvailable, SlotBooked, SlotUnavailable, SlotMaintenance:
		return true
	}
	return false
}

// TimeSlot represents one hourly slot of a turf's day
// Exactly 24 slots exist per (turf, date) once generated; slot numbers map hour-of-day 0..23
type TimeSlot struct {
	ID         int64
	TurfID     int64
	SlotDate   time.Time
	SlotNumber int // 0..23, equals the hour of day

	StartTime types.TimeString
	EndTime   types.TimeString

	Status SlotStatus

	BasePrice       int64 // turf base price the slot was generated from
	Price           int64 // integer currency units, frozen per slot
	PriceMultiplier decimal.Decimal

	MaxBookings     int
	CurrentBookings int

	IsBlocked   bool
	BlockReason *string
	BlockedBy   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the slot can accept another booking
func (s *TimeSlot) IsBookable() bool {
	return s.Status == SlotAvailable &&
		!s.IsBlocked &&
		s.CurrentBookings < s.MaxBookings
}

// HasCapacity returns true if the slot has free spots left
func (s *TimeSlot) HasCapacity() bool {
	return s.CurrentBookings < s.MaxBookings
}

// StartDateTime совмещает дату слота и время начала
func (s *TimeSlot) StartDateTime() (time.Time, error) {
	return s.StartTime.OnDate(s.SlotDate)
}

// IsPeak returns true if the slot falls into a peak-hour bucket
func (s *TimeSlot) IsPeak() bool {
	return IsPeakHour(s.SlotNumber)
}
