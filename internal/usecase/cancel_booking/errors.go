package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда актор не владелец бронирования
	// и не имеет повышенной роли на площадке
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrNotCancellable возвращается, когда бронирование уже началось
	// или находится в терминальном статусе
	ErrNotCancellable = errors.New("cancel_booking: booking is not cancellable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
