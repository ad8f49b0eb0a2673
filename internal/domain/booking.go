package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
// Set by the external payment collaborator; the core only stores it
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentPartialRefund PaymentStatus = "partial_refund"
)

// referencePrefix префикс человекочитаемого номера бронирования
const referencePrefix = "TRF"

// Booking represents a turf booking spanning one or more contiguous hourly slots
type Booking struct {
	ID     int64
	UserID int64
	TurfID int64

	// SlotIDs упорядоченный список слотов бронирования (по slot_number)
	SlotIDs []int64

	BookingDate   time.Time
	StartTime     types.TimeString // start of the first slot
	EndTime       types.TimeString // end of the last slot
	DurationHours int              // equals len(SlotIDs)

	// TotalPrice сумма цен слотов на момент бронирования
	// Фиксируется при создании и не пересчитывается при изменении цен слотов
	TotalPrice int64

	Status        BookingStatus
	PaymentStatus PaymentStatus

	ContactName  string
	ContactPhone string
	ContactEmail string

	TeamSize        *int
	SpecialRequests *string

	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time
	RefundAmount       *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reference returns the derived human-readable booking reference:
// prefix + last 6 hex digits of the id, upper-cased
func (b *Booking) Reference() string {
	return fmt.Sprintf("%s-%06X", referencePrefix, b.ID&0xFFFFFF)
}

// IsActive returns true if the booking still occupies its slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking status allows cancellation
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a non-reopenable state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// StartDateTime совмещает дату бронирования и время начала
func (b *Booking) StartDateTime() (time.Time, error) {
	return b.StartTime.OnDate(b.BookingDate)
}

// TurfBookingsFilter фильтр для получения бронирований площадки
type TurfBookingsFilter struct {
	TurfID          int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
