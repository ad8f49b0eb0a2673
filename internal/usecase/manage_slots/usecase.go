package manage_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// UseCase use case административного управления слотами:
// перевод статуса (блокировка на обслуживание и обратно) и изменение цен.
// Доступ только менеджеру или владельцу площадки
type UseCase struct {
	slotRepo    SlotRepository
	turfClient  TurfServiceClient
	reportCache ReportCache
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	turfClient TurfServiceClient,
	reportCache ReportCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		turfClient:  turfClient,
		reportCache: reportCache,
		txManager:   txManager,
		logger:      logger,
	}
}

// SetStatus административно переводит слоты между available, unavailable
// и maintenance. Забронированные слоты не трогаем: для них сначала
// нужно отменить бронирование
func (uc *UseCase) SetStatus(ctx context.Context, req *SetStatusRequest) (*Response, error) {
	uc.logger.Info("ManageSlots.SetStatus: turf=%d, slots=%v, status=%s, actor=%d",
		req.TurfID, req.SlotIDs, req.Status, req.ActorID)

	status, err := validateSetStatusRequest(req)
	if err != nil {
		uc.logger.Warn("ManageSlots.SetStatus: validation failed: %v", err)
		return nil, err
	}

	if err := uc.authorize(ctx, req.TurfID, req.ActorID); err != nil {
		return nil, err
	}

	blocked := status != domain.SlotAvailable

	var reason *string
	var actorID *int64
	if blocked {
		reason = req.Reason
		actorID = &req.ActorID
	}

	var affected []*domain.TimeSlot

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Слоты с блокировкой строк, чтобы не гоняться с аллокатором
		slots, err := uc.slotRepo.GetByIDs(txCtx, req.TurfID, req.SlotIDs)
		if err != nil {
			uc.logger.Error("ManageSlots.SetStatus: failed to fetch slots: %v", err)
			return fmt.Errorf("%w: failed to fetch slots: %v", ErrInternal, err)
		}

		if len(slots) != len(req.SlotIDs) {
			uc.logger.Warn("ManageSlots.SetStatus: requested %d slots, found %d",
				len(req.SlotIDs), len(slots))
			return ErrSlotNotFound
		}

		for _, s := range slots {
			if s.Status == domain.SlotBooked {
				uc.logger.Warn("ManageSlots.SetStatus: slot id=%d is booked", s.ID)
				return ErrSlotBooked
			}
		}

		if err := uc.slotRepo.SetStatus(txCtx, req.TurfID, req.SlotIDs, status, blocked, reason, actorID); err != nil {
			uc.logger.Error("ManageSlots.SetStatus: failed to update slots: %v", err)
			return fmt.Errorf("%w: failed to update slots: %v", ErrInternal, err)
		}

		affected = slots
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ManageSlots.SetStatus: updated %d slots to %s", len(affected), status)
	uc.invalidateReportDays(ctx, req.TurfID, affected)

	return &Response{UpdatedSlots: len(affected)}, nil
}

// SetPricing изменяет цену слотов: либо фиксированная цена, либо
// множитель с пересчетом от базовой цены площадки
func (uc *UseCase) SetPricing(ctx context.Context, req *SetPricingRequest) (*Response, error) {
	uc.logger.Info("ManageSlots.SetPricing: turf=%d, slots=%v, actor=%d",
		req.TurfID, req.SlotIDs, req.ActorID)

	if err := validateSetPricingRequest(req); err != nil {
		uc.logger.Warn("ManageSlots.SetPricing: validation failed: %v", err)
		return nil, err
	}

	if err := uc.authorize(ctx, req.TurfID, req.ActorID); err != nil {
		return nil, err
	}

	var affected []*domain.TimeSlot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slots, err := uc.slotRepo.GetByIDs(txCtx, req.TurfID, req.SlotIDs)
		if err != nil {
			uc.logger.Error("ManageSlots.SetPricing: failed to fetch slots: %v", err)
			return fmt.Errorf("%w: failed to fetch slots: %v", ErrInternal, err)
		}

		if len(slots) != len(req.SlotIDs) {
			uc.logger.Warn("ManageSlots.SetPricing: requested %d slots, found %d",
				len(req.SlotIDs), len(slots))
			return ErrSlotNotFound
		}

		if req.Price != nil {
			err = uc.slotRepo.SetPrice(txCtx, req.TurfID, req.SlotIDs, *req.Price)
		} else {
			err = uc.slotRepo.SetMultiplier(txCtx, req.TurfID, req.SlotIDs, *req.Multiplier)
		}
		if err != nil {
			uc.logger.Error("ManageSlots.SetPricing: failed to update slots: %v", err)
			return fmt.Errorf("%w: failed to update slots: %v", ErrInternal, err)
		}

		affected = slots
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ManageSlots.SetPricing: updated %d slots", len(affected))
	uc.invalidateReportDays(ctx, req.TurfID, affected)

	return &Response{UpdatedSlots: len(affected)}, nil
}

// authorize пропускает менеджера или владельца площадки
func (uc *UseCase) authorize(ctx context.Context, turfID, actorID int64) error {
	turf, err := uc.turfClient.GetTurf(ctx, turfID)
	if err != nil {
		if errors.Is(err, turfservice.ErrTurfNotFound) {
			uc.logger.Warn("ManageSlots: turf id=%d not found", turfID)
			return ErrTurfNotFound
		}
		uc.logger.Error("ManageSlots: failed to get turf id=%d: %v", turfID, err)
		return fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if !turf.IsManagedBy(actorID) {
		uc.logger.Warn("ManageSlots: actor=%d has no access to turf id=%d", actorID, turfID)
		return ErrAccessDenied
	}

	return nil
}

// invalidateReportDays сбрасывает кэш отчетов по дням затронутых слотов
func (uc *UseCase) invalidateReportDays(ctx context.Context, turfID int64, slots []*domain.TimeSlot) {
	seen := make(map[time.Time]struct{}, 1)
	for _, s := range slots {
		day := s.SlotDate
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		if err := uc.reportCache.Invalidate(ctx, turfID, day); err != nil {
			uc.logger.Warn("ManageSlots: failed to invalidate report cache for turf=%d: %v", turfID, err)
		}
	}
}
