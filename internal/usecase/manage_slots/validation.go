package manage_slots

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

var (
	minMultiplier = decimal.NewFromFloat(domain.MinPriceMultiplier)
	maxMultiplier = decimal.NewFromFloat(domain.MaxPriceMultiplier)
)

// validateSetStatusRequest валидирует запрос и возвращает целевой статус.
// booked не является допустимой целью: им управляет только аллокатор
func validateSetStatusRequest(req *SetStatusRequest) (domain.SlotStatus, error) {
	if err := validateSlotSelection(req.TurfID, req.SlotIDs, req.ActorID); err != nil {
		return "", err
	}

	status := domain.SlotStatus(req.Status)
	switch status {
	case domain.SlotAvailable, domain.SlotUnavailable, domain.SlotMaintenance:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	if status != domain.SlotAvailable {
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			return "", fmt.Errorf("%w: reason is required for status %s", ErrInvalidInput, status)
		}
		if len(*req.Reason) > domain.MaxNotesLength {
			return "", fmt.Errorf("%w: reason too long", ErrInvalidInput)
		}
	}

	return status, nil
}

// validateSetPricingRequest валидирует запрос изменения цены:
// ровно одно из price/multiplier, цена положительная, множитель в допустимых границах
func validateSetPricingRequest(req *SetPricingRequest) error {
	if err := validateSlotSelection(req.TurfID, req.SlotIDs, req.ActorID); err != nil {
		return err
	}

	if (req.Price == nil) == (req.Multiplier == nil) {
		return fmt.Errorf("%w: exactly one of price or multiplier must be set", ErrInvalidInput)
	}

	if req.Price != nil && *req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	if req.Multiplier != nil {
		if req.Multiplier.LessThan(minMultiplier) || req.Multiplier.GreaterThan(maxMultiplier) {
			return fmt.Errorf("%w: multiplier must be between %.1f and %.1f",
				ErrInvalidInput, domain.MinPriceMultiplier, domain.MaxPriceMultiplier)
		}
	}

	return nil
}

// validateSlotSelection общая проверка адресации слотов
func validateSlotSelection(turfID int64, slotIDs []int64, actorID int64) error {
	if turfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if actorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if len(slotIDs) == 0 {
		return fmt.Errorf("%w: slotIDs must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		if id <= 0 {
			return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate slot id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
