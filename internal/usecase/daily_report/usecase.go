package daily_report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/infra/cache/reportcache"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// UseCase use case дневного отчета по площадке.
// Отчет всегда пересчитывается из актуальных слотов и бронирований;
// Redis-кэш только экономит повторные пересчеты и никогда не является
// источником истины. Отчет никогда не генерирует слоты: для дня без
// слотов возвращаются нулевые метрики
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	turfClient   TurfServiceClient
	reportCache  ReportCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	turfClient TurfServiceClient,
	reportCache ReportCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		turfClient:   turfClient,
		reportCache:  reportCache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит дневной отчет по площадке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.DailyReport, error) {
	uc.logger.Info("DailyReport: turf=%d, date=%s, actor=%d",
		req.TurfID, req.Date.Format(domain.DateFormat), req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DailyReport: validation failed: %v", err)
		return nil, err
	}

	// Отчеты доступны только менеджеру или владельцу площадки
	turf, err := uc.turfClient.GetTurf(ctx, req.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("DailyReport: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("DailyReport: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if !turf.IsManagedBy(req.ActorID) {
		uc.logger.Warn("DailyReport: actor=%d has no access to turf id=%d", req.ActorID, req.TurfID)
		return nil, ErrAccessDenied
	}

	date := truncateToDay(req.Date)

	// Сначала пробуем кэш - промах или ошибка Redis означают пересчет
	cached, err := uc.reportCache.Get(ctx, req.TurfID, date)
	if err == nil {
		uc.logger.Info("DailyReport: cache hit for turf=%d date=%s",
			req.TurfID, date.Format(domain.DateFormat))
		return cached, nil
	}
	if !errors.Is(err, reportcache.ErrCacheMiss) {
		uc.logger.Warn("DailyReport: cache get failed, recomputing: %v", err)
	}

	var (
		slots    []*domain.TimeSlot
		bookings []*domain.Booking
	)

	// Слоты и бронирования читаем консистентно в одной read-only транзакции
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		slots, err = uc.slotRepo.GetByTurfAndDate(txCtx, req.TurfID, date)
		if err != nil {
			return fmt.Errorf("%w: failed to fetch slots: %v", ErrInternal, err)
		}

		bookings, err = uc.bookingRepo.GetByTurfWithFilter(txCtx, domain.TurfBookingsFilter{
			TurfID:          req.TurfID,
			StartDate:       &date,
			EndDate:         &date,
			IncludeInactive: true, // отмены нужны для cancellation rate
		})
		if err != nil {
			return fmt.Errorf("%w: failed to fetch bookings: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("DailyReport: failed to read data for turf=%d: %v", req.TurfID, err)
		return nil, err
	}

	report := buildReport(req.TurfID, date, slots, bookings, uc.timeProvider.Now())

	if err := uc.reportCache.Set(ctx, report); err != nil {
		uc.logger.Warn("DailyReport: failed to cache report for turf=%d: %v", req.TurfID, err)
	}

	uc.logger.Info("DailyReport: computed report for turf=%d date=%s occupancy=%.1f%%",
		req.TurfID, date.Format(domain.DateFormat), report.OccupancyRate)

	return report, nil
}

// buildReport агрегирует слоты и бронирования дня в отчет
func buildReport(
	turfID int64,
	date time.Time,
	slots []*domain.TimeSlot,
	bookings []*domain.Booking,
	now time.Time,
) *domain.DailyReport {
	report := &domain.DailyReport{
		TurfID:      turfID,
		Date:        date,
		TotalSlots:  len(slots),
		GeneratedAt: now,
	}

	for _, s := range slots {
		switch s.Status {
		case domain.SlotBooked:
			report.BookedSlots++
			if s.IsPeak() {
				report.PeakHourBookings++
			} else {
				report.OffPeakBookings++
			}
		case domain.SlotAvailable:
			report.AvailableSlots++
		case domain.SlotUnavailable, domain.SlotMaintenance:
			report.UnavailableSlots++
		}
	}

	if report.TotalSlots > 0 {
		report.OccupancyRate = float64(report.BookedSlots) / float64(report.TotalSlots) * 100
	}

	for _, b := range bookings {
		report.TotalBookings++
		if b.Status == domain.StatusCancelled {
			report.CancelledBookings++
			continue
		}
		// Выручка считается по зафиксированной цене бронирования
		report.TotalRevenue += b.TotalPrice
	}

	if report.TotalBookings > 0 {
		report.CancellationRate = float64(report.CancelledBookings) / float64(report.TotalBookings) * 100
	}

	return report
}

// validateRequest валидирует входные данные
func validateRequest(req *Request) error {
	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// truncateToDay обнуляет время, сохраняя дату в UTC
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
