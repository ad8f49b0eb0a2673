package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Request модель запроса на бронирование набора слотов
type Request struct {
	UserID  int64
	TurfID  int64
	SlotIDs []int64 // запрошенные слоты, обязаны быть смежными по номерам

	ContactName  string
	ContactPhone string
	ContactEmail string

	TeamSize        *int    // размер команды (опционально)
	SpecialRequests *string // пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	Reference string // человекочитаемый номер бронирования
	UserID    int64
	TurfID    int64
	SlotIDs   []int64

	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours int
	TotalPrice    int64

	Status        string
	PaymentStatus string

	ContactName  string
	ContactPhone string
	ContactEmail string

	TeamSize        *int
	SpecialRequests *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует доменное бронирование в ответ usecase
func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference(),
		UserID:          b.UserID,
		TurfID:          b.TurfID,
		SlotIDs:         b.SlotIDs,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationHours:   b.DurationHours,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		ContactName:     b.ContactName,
		ContactPhone:    b.ContactPhone,
		ContactEmail:    b.ContactEmail,
		TeamSize:        b.TeamSize,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
