package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/slot"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// errDayGeneratedConcurrently сигнал о том, что конкурентная генерация
// того же дня закоммитилась первой; транзакция к этому моменту абортирована
var errDayGeneratedConcurrently = errors.New("generate_slots: day generated concurrently")

// UseCase use case генерации слотов дня
// Генерация идемпотентна: повторный вызов для той же даты возвращает
// существующие слоты без изменений, даже если базовая цена площадки
// с тех пор поменялась
type UseCase struct {
	slotRepo     SlotRepository
	turfClient   TurfServiceClient
	reportCache  ReportCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
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
		slotRepo:     slotRepo,
		turfClient:   turfClient,
		reportCache:  reportCache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute генерирует (или возвращает существующие) 24 слота на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EnsureSlots: turf=%d, date=%s", req.TurfID, req.Date.Format(domain.DateFormat))

	// 1. Валидация - до каких-либо записей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EnsureSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку - источник базовой цены
	turf, err := uc.turfClient.GetTurf(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("EnsureSlots: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("EnsureSlots: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	return uc.ensureDay(ctx, req.TurfID, req.Date, turf.PricePerHour)
}

// ExecuteRange пакетно генерирует слоты на диапазон дат (включительно)
// Диапазон ограничен domain.MaxGenerationRangeDays; дни, для которых слоты
// уже существуют, пропускаются без ошибки
func (uc *UseCase) ExecuteRange(ctx context.Context, req *RangeRequest) (*RangeResponse, error) {
	uc.logger.Info("EnsureSlotsRange: turf=%d, range=%s..%s",
		req.TurfID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if err := validateRangeRequest(req); err != nil {
		uc.logger.Warn("EnsureSlotsRange: validation failed: %v", err)
		return nil, err
	}

	turf, err := uc.turfClient.GetTurf(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("EnsureSlotsRange: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("EnsureSlotsRange: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	result := &RangeResponse{TurfID: req.TurfID}

	for date := req.StartDate; !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		result.DaysProcessed++

		resp, err := uc.ensureDay(ctx, req.TurfID, date, turf.PricePerHour)
		if err != nil {
			return nil, err
		}
		if resp.Generated {
			result.DaysGenerated++
			result.SlotsCreated += len(resp.Slots)
		}
	}

	uc.logger.Info("EnsureSlotsRange: turf=%d, generated %d/%d days (%d slots)",
		req.TurfID, result.DaysGenerated, result.DaysProcessed, result.SlotsCreated)

	return result, nil
}

// ensureDay идемпотентно создает слоты одного дня в serializable транзакции
// Проверка существования и bulk insert выполняются в одной транзакции;
// конфликт уникального ключа при конкурентной генерации абортирует
// транзакцию (SQLSTATE 25P02), поэтому существующие слоты перечитываются
// уже после отката
func (uc *UseCase) ensureDay(ctx context.Context, turfID int64, date time.Time, basePrice int64) (*Response, error) {
	result := &Response{TurfID: turfID, Date: date}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		exists, err := uc.slotRepo.ExistsForDate(txCtx, turfID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to check existing slots: %v", ErrInternal, err)
		}

		if !exists {
			if err := uc.slotRepo.BulkCreate(txCtx, buildDaySlots(turfID, date, basePrice)); err != nil {
				if errors.Is(err, slotRepo.ErrSlotsAlreadyExist) {
					// Внутри абортированной транзакции читать уже нельзя
					return errDayGeneratedConcurrently
				}
				return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
			}
			result.Generated = true
		}

		slots, err := uc.slotRepo.GetByTurfAndDate(txCtx, turfID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to fetch slots: %v", ErrInternal, err)
		}
		result.Slots = slots
		return nil
	})

	// Конкурентная генерация успела раньше - день уже существует,
	// перечитываем его свежим запросом вне откатившейся транзакции
	if errors.Is(err, errDayGeneratedConcurrently) {
		uc.logger.Info("EnsureSlots: turf=%d date=%s generated concurrently",
			turfID, date.Format(domain.DateFormat))

		slots, rerr := uc.slotRepo.GetByTurfAndDate(ctx, turfID, date)
		if rerr != nil {
			return nil, fmt.Errorf("%w: failed to fetch slots: %v", ErrInternal, rerr)
		}
		result.Slots = slots
		return result, nil
	}

	if err != nil {
		return nil, err
	}

	if result.Generated {
		uc.logger.Info("EnsureSlots: turf=%d date=%s generated %d slots",
			turfID, date.Format(domain.DateFormat), len(result.Slots))

		// Отчет за этот день мог быть закэширован до генерации
		if cerr := uc.reportCache.Invalidate(ctx, turfID, date); cerr != nil {
			uc.logger.Warn("EnsureSlots: failed to invalidate report cache for turf=%d: %v", turfID, cerr)
		}
	}

	return result, nil
}

// buildDaySlots строит 24 часовых слота с кривой ценообразования по часам
func buildDaySlots(turfID int64, date time.Time, basePrice int64) []*domain.TimeSlot {
	slots := make([]*domain.TimeSlot, 0, domain.SlotsPerDay)

	for hour := 0; hour < domain.SlotsPerDay; hour++ {
		multiplier := domain.MultiplierForHour(hour)

		slots = append(slots, &domain.TimeSlot{
			TurfID:          turfID,
			SlotDate:        date,
			SlotNumber:      hour,
			StartTime:       hourToTime(hour),
			EndTime:         hourToTime((hour + 1) % 24),
			Status:          domain.SlotAvailable,
			BasePrice:       basePrice,
			Price:           domain.SlotPrice(basePrice, multiplier),
			PriceMultiplier: multiplier,
			MaxBookings:     domain.DefaultMaxBookings,
			CurrentBookings: 0,
		})
	}

	return slots
}
