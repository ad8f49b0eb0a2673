package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-TurfService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	RefundAmount  int64  `json:"refundAmount"`
	TotalPrice    int64  `json:"totalPrice"`
	CancelledBy   int64  `json:"cancelledBy"`
	CancelledAt   string `json:"cancelledAt"` // ISO 8601
	Reason        string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		RefundAmount:  resp.RefundAmount,
		TotalPrice:    resp.TotalPrice,
		CancelledBy:   resp.CancelledBy,
		CancelledAt:   resp.CancelledAt.Format(time.RFC3339),
		Reason:        resp.Reason,
	}
}
