package cancel_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// validateRequest валидирует входные данные до обращений к хранилищу
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	return nil
}

// normalizeReason обрезает пробелы, пустая причина допустима
func normalizeReason(reason string) string {
	return strings.TrimSpace(reason)
}
