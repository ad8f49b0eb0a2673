package generate_slots

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена в каталоге
	ErrTurfNotFound = errors.New("generate_slots: turf not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("generate_slots: invalid date")

	// ErrRangeTooLong возвращается, когда диапазон генерации превышает лимит
	ErrRangeTooLong = errors.New("generate_slots: date range exceeds maximum")

	// ErrInvalidRange возвращается, когда конец диапазона раньше начала
	ErrInvalidRange = errors.New("generate_slots: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
