package daily_report

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена
	ErrTurfNotFound = errors.New("daily_report: turf not found")

	// ErrAccessDenied возвращается, когда актор не менеджер/владелец площадки
	ErrAccessDenied = errors.New("daily_report: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("daily_report: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("daily_report: internal error")
)
