package turfservice

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена в каталоге
	ErrTurfNotFound = errors.New("turf not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("turfservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("turfservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что каталог недоступен и читающие операции могут продолжиться без него
	ErrServiceDegraded = errors.New("turfservice unavailable: graceful degradation applied")
)
