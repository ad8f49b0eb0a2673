package create_booking

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена
	ErrTurfNotFound = errors.New("create_booking: turf not found")

	// ErrSlotNotFound возвращается, когда часть запрошенных слотов не существует
	// или принадлежит другой площадке
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда слот занят, заблокирован
	// или проигран конкурентному бронированию
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrSlotInPast возвращается при попытке забронировать прошедший
	// или уже идущий слот
	ErrSlotInPast = errors.New("create_booking: slot start time is in the past")

	// ErrNonContiguousSlots возвращается, когда слоты не образуют
	// непрерывную последовательность по номерам
	ErrNonContiguousSlots = errors.New("create_booking: slots are not contiguous")

	// ErrInvalidContactInfo возвращается при отсутствии контактных данных
	ErrInvalidContactInfo = errors.New("create_booking: contact name, phone and email are required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
