package notifier

// Routing keys для topic exchange
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingReminder  = "booking.reminder"
)

// BookingConfirmed payload события подтверждения бронирования
type BookingConfirmed struct {
	BookingID  int64  `json:"booking_id"`
	Reference  string `json:"reference"`
	UserID     int64  `json:"user_id"`
	TurfID     int64  `json:"turf_id"`
	Date       string `json:"date"`       // YYYY-MM-DD
	StartTime  string `json:"start_time"` // HH:MM
	EndTime    string `json:"end_time"`   // HH:MM
	TotalPrice int64  `json:"total_price"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// BookingCancelled payload события отмены бронирования
type BookingCancelled struct {
	BookingID    int64  `json:"booking_id"`
	Reference    string `json:"reference"`
	UserID       int64  `json:"user_id"`
	TurfID       int64  `json:"turf_id"`
	Date         string `json:"date"` // YYYY-MM-DD
	RefundAmount int64  `json:"refund_amount"`
	Reason       string `json:"reason"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// BookingReminder payload отложенного напоминания
// Доставку в нужный момент планирует notification-сервис на другой стороне очереди
type BookingReminder struct {
	BookingID int64  `json:"booking_id"`
	Reference string `json:"reference"`
	UserID    int64  `json:"user_id"`
	TurfID    int64  `json:"turf_id"`
	StartsAt  int64  `json:"starts_at"` // unix seconds
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
