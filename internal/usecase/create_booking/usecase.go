package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TurfService/internal/integrations/notifier"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// UseCase use case создания бронирования (аллокатор слотов)
// Переводы слотов в booked и вставка бронирования выполняются в одной
// serializable транзакции: при конкурентных запросах на пересекающийся
// набор слотов ровно один коммитится, остальные получают конфликт
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	turfClient   TurfServiceClient
	notifier     Notifier
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
	notifierClient Notifier,
	reportCache ReportCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		turfClient:   turfClient,
		notifier:     notifierClient,
		reportCache:  reportCache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование набора смежных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, turf=%d, slots=%v", req.UserID, req.TurfID, req.SlotIDs)

	// 1. Валидация входных данных - до какой-либо персистенции
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование площадки
	if _, err := uc.turfClient.GetTurf(ctx, req.TurfID); err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("CreateBooking: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("CreateBooking: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Читаем, проверяем и пишем в одной serializable транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Слоты по ID с блокировкой строк (FOR UPDATE)
		slots, err := uc.slotRepo.GetByIDs(txCtx, req.TurfID, req.SlotIDs)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to fetch slots: %v", err)
			return fmt.Errorf("%w: failed to fetch slots: %v", ErrInternal, err)
		}

		// Часть ID не существует или принадлежит другой площадке
		if len(slots) != len(req.SlotIDs) {
			uc.logger.Warn("CreateBooking: requested %d slots, found %d", len(req.SlotIDs), len(slots))
			return ErrSlotNotFound
		}

		// 3.2. Booking-предикат каждого слота
		if err := validateBookable(slots, now); err != nil {
			uc.logger.Warn("CreateBooking: slot predicate failed: %v", err)
			return err
		}

		// 3.3. Непрерывность по номерам слотов
		sortBySlotNumber(slots)
		if err := validateContiguous(slots); err != nil {
			uc.logger.Warn("CreateBooking: slots %v are not contiguous", req.SlotIDs)
			return err
		}

		// 3.4. Итоговая цена - сумма цен слотов на момент аллокации
		var totalPrice int64
		orderedIDs := make([]int64, 0, len(slots))
		for _, s := range slots {
			totalPrice += s.Price
			orderedIDs = append(orderedIDs, s.ID)
		}

		first := slots[0]
		last := slots[len(slots)-1]

		// 3.5. Переводим слоты available -> booked с предусловием в WHERE
		if err := uc.slotRepo.MarkBooked(txCtx, orderedIDs); err != nil {
			if errors.Is(err, slotRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: lost race for slots %v", orderedIDs)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to mark slots booked: %v", err)
			return fmt.Errorf("%w: failed to mark slots booked: %v", ErrInternal, err)
		}

		// 3.6. Вставляем бронирование в той же транзакции
		booking := &domain.Booking{
			UserID:          req.UserID,
			TurfID:          req.TurfID,
			SlotIDs:         orderedIDs,
			BookingDate:     first.SlotDate,
			StartTime:       first.StartTime,
			EndTime:         last.EndTime,
			DurationHours:   len(slots),
			TotalPrice:      totalPrice,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentUnpaid,
			ContactName:     req.ContactName,
			ContactPhone:    req.ContactPhone,
			ContactEmail:    req.ContactEmail,
			TeamSize:        req.TeamSize,
			SpecialRequests: req.SpecialRequests,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d ref=%s total=%d",
		result.ID, result.Reference(), result.TotalPrice)

	// 4. Side effects после коммита - их ошибки не откатывают бронирование
	uc.emitSideEffects(ctx, result)

	return fromDomain(result), nil
}

// emitSideEffects публикует подтверждение и отложенное напоминание,
// сбрасывает кэш отчета за день. Все ошибки только логируются
func (uc *UseCase) emitSideEffects(ctx context.Context, b *domain.Booking) {
	confirmed := notifier.BookingConfirmed{
		BookingID:  b.ID,
		Reference:  b.Reference(),
		UserID:     b.UserID,
		TurfID:     b.TurfID,
		Date:       b.BookingDate.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		TotalPrice: b.TotalPrice,
		Email:      b.ContactEmail,
		Phone:      b.ContactPhone,
	}
	if err := uc.notifier.Notify(ctx, notifier.EventBookingConfirmed, confirmed); err != nil {
		uc.logger.Error("CreateBooking: failed to publish confirmation for booking id=%d: %v", b.ID, err)
	}

	if startsAt, err := b.StartDateTime(); err == nil {
		reminder := notifier.BookingReminder{
			BookingID: b.ID,
			Reference: b.Reference(),
			UserID:    b.UserID,
			TurfID:    b.TurfID,
			StartsAt:  startsAt.Unix(),
			Email:     b.ContactEmail,
			Phone:     b.ContactPhone,
		}
		if err := uc.notifier.Notify(ctx, notifier.EventBookingReminder, reminder); err != nil {
			uc.logger.Error("CreateBooking: failed to schedule reminder for booking id=%d: %v", b.ID, err)
		}
	}

	if err := uc.reportCache.Invalidate(ctx, b.TurfID, b.BookingDate); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate report cache for turf=%d: %v", b.TurfID, err)
	}
}
