package manage_slots

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена
	ErrTurfNotFound = errors.New("manage_slots: turf not found")

	// ErrSlotNotFound возвращается, когда часть слотов не существует
	// или принадлежит другой площадке
	ErrSlotNotFound = errors.New("manage_slots: slot not found")

	// ErrAccessDenied возвращается, когда актор не менеджер/владелец площадки
	ErrAccessDenied = errors.New("manage_slots: access denied")

	// ErrSlotBooked возвращается при попытке административного перевода
	// забронированного слота
	ErrSlotBooked = errors.New("manage_slots: slot is booked")

	// ErrInvalidStatus возвращается при недопустимом целевом статусе
	ErrInvalidStatus = errors.New("manage_slots: invalid target status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_slots: internal error")
)
