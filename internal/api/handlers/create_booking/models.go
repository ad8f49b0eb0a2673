package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	createBooking "github.com/m04kA/SMC-TurfService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TurfID  int64   `json:"turfId"`
	SlotIDs []int64 `json:"slotIds"`

	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`

	TeamSize        *int    `json:"teamSize,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	UserID        int64   `json:"userId"`
	TurfID        int64   `json:"turfId"`
	SlotIDs       []int64 `json:"slotIds"`
	BookingDate   string  `json:"bookingDate"` // "2025-10-15"
	StartTime     string  `json:"startTime"`   // "10:00"
	EndTime       string  `json:"endTime"`     // "12:00"
	DurationHours int     `json:"durationHours"`
	TotalPrice    int64   `json:"totalPrice"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`

	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`

	TeamSize        *int    `json:"teamSize,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:          userID,
		TurfID:          r.TurfID,
		SlotIDs:         r.SlotIDs,
		ContactName:     r.ContactName,
		ContactPhone:    r.ContactPhone,
		ContactEmail:    r.ContactEmail,
		TeamSize:        r.TeamSize,
		SpecialRequests: r.SpecialRequests,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		UserID:          resp.UserID,
		TurfID:          resp.TurfID,
		SlotIDs:         resp.SlotIDs,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationHours:   resp.DurationHours,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		ContactName:     resp.ContactName,
		ContactPhone:    resp.ContactPhone,
		ContactEmail:    resp.ContactEmail,
		TeamSize:        resp.TeamSize,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
