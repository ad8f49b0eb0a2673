package create_booking

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// validateRequest валидирует входные данные до каких-либо обращений к хранилищу
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}

	if len(req.SlotIDs) == 0 {
		return fmt.Errorf("%w: slotIDs must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.SlotIDs))
	for _, id := range req.SlotIDs {
		if id <= 0 {
			return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate slot id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	// Контактные данные обязательны - без них бронирование не создается
	if strings.TrimSpace(req.ContactName) == "" ||
		strings.TrimSpace(req.ContactPhone) == "" ||
		strings.TrimSpace(req.ContactEmail) == "" {
		return ErrInvalidContactInfo
	}

	if req.TeamSize != nil && *req.TeamSize <= 0 {
		return fmt.Errorf("%w: teamSize must be positive", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxNotesLength {
		return fmt.Errorf("%w: specialRequests too long", ErrInvalidInput)
	}

	return nil
}

// sortBySlotNumber сортирует слоты по номеру (час суток)
func sortBySlotNumber(slots []*domain.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].SlotNumber < slots[j].SlotNumber
	})
}

// validateContiguous проверяет, что отсортированные слоты принадлежат
// одному дню и образуют непрерывную последовательность номеров
// (каждый следующий = предыдущий + 1). Одиночный слот тривиально непрерывен
func validateContiguous(slots []*domain.TimeSlot) error {
	for i := 1; i < len(slots); i++ {
		// Смежные номера на разных датах не образуют один интервал
		if !slots[i].SlotDate.Equal(slots[0].SlotDate) {
			return ErrNonContiguousSlots
		}
		if slots[i].SlotNumber != slots[i-1].SlotNumber+1 {
			return ErrNonContiguousSlots
		}
	}
	return nil
}

// validateBookable проверяет booking-предикат каждого слота:
// статус available, нет блокировки, есть емкость, начало строго в будущем
func validateBookable(slots []*domain.TimeSlot, now time.Time) error {
	for _, s := range slots {
		if !s.IsBookable() {
			return ErrSlotUnavailable
		}

		start, err := s.StartDateTime()
		if err != nil {
			return fmt.Errorf("%w: slot %d has invalid start time: %v", ErrInternal, s.ID, err)
		}
		if !start.After(now) {
			return ErrSlotInPast
		}
	}
	return nil
}
