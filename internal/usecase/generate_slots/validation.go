package generate_slots

import (
	"fmt"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// validateRequest валидирует запрос генерации на одну дату
func validateRequest(req *Request) error {
	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	return nil
}

// validateRangeRequest валидирует запрос пакетной генерации
func validateRangeRequest(req *RangeRequest) error {
	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidDate)
	}

	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidRange
	}

	// Диапазон включительный: start == end - это один день
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > domain.MaxGenerationRangeDays {
		return fmt.Errorf("%w: %d days requested, maximum is %d",
			ErrRangeTooLong, days, domain.MaxGenerationRangeDays)
	}

	return nil
}

// hourToTime конвертирует час суток в TimeString "HH:00"
func hourToTime(hour int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:00", hour))
}
