package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
	ActorID   int64  // кто отменяет: владелец бронирования или менеджер/владелец площадки
	Reason    string // причина отмены
}

// Response модель ответа с отмененным бронированием и суммой возврата
type Response struct {
	ID            int64
	Reference     string
	Status        string
	PaymentStatus string

	RefundAmount int64 // вычислено по расписанию возвратов от времени до начала
	TotalPrice   int64

	CancelledBy int64
	CancelledAt time.Time
	Reason      string
}

// fromDomain собирает ответ из отмененного бронирования
func fromDomain(b *domain.Booking, refund int64, actorID int64, cancelledAt time.Time, reason string) *Response {
	return &Response{
		ID:            b.ID,
		Reference:     b.Reference(),
		Status:        string(domain.StatusCancelled),
		PaymentStatus: string(b.PaymentStatus),
		RefundAmount:  refund,
		TotalPrice:    b.TotalPrice,
		CancelledBy:   actorID,
		CancelledAt:   cancelledAt,
		Reason:        reason,
	}
}
