package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TurfService/internal/integrations/notifier"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// UseCase use case отмены бронирования с расчетом возврата.
// Сумма возврата определяется временем до начала бронирования на момент
// отмены; освобождение слотов и перевод бронирования в cancelled
// выполняются в одной транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	turfClient   TurfServiceClient
	notifier     Notifier
	reportCache  ReportCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	turfClient TurfServiceClient,
	notifierClient Notifier,
	reportCache ReportCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		turfClient:   turfClient,
		notifier:     notifierClient,
		reportCache:  reportCache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет бронирование и возвращает сумму возврата
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d", req.BookingID, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// Отменять может владелец бронирования либо менеджер/владелец площадки
	if err := uc.authorize(ctx, booking, req.ActorID); err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d in status %s is not cancellable",
			booking.ID, booking.Status)
		return nil, ErrNotCancellable
	}

	now := uc.timeProvider.Now()

	startsAt, err := booking.StartDateTime()
	if err != nil {
		uc.logger.Error("CancelBooking: booking id=%d has invalid start time: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: invalid booking start time: %v", ErrInternal, err)
	}

	// Начавшееся или прошедшее бронирование отменить нельзя
	if !startsAt.After(now) {
		uc.logger.Warn("CancelBooking: booking id=%d already started at %s", booking.ID, startsAt)
		return nil, ErrNotCancellable
	}

	refund := domain.RefundAmount(booking.TotalPrice, startsAt.Sub(now))
	paymentStatus := nextPaymentStatus(booking, refund)
	reason := normalizeReason(req.Reason)

	// Перевод бронирования в cancelled и освобождение слотов - атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, reason, req.ActorID, refund, paymentStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrNotCancellable) {
				// Конкурентная отмена или переход статуса обогнали нас
				uc.logger.Warn("CancelBooking: booking id=%d changed status concurrently", booking.ID)
				return ErrNotCancellable
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		if err := uc.slotRepo.Release(txCtx, booking.SlotIDs); err != nil {
			uc.logger.Error("CancelBooking: failed to release slots %v: %v", booking.SlotIDs, err)
			return fmt.Errorf("%w: failed to release slots: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: cancelled booking id=%d ref=%s refund=%d",
		booking.ID, booking.Reference(), refund)

	booking.PaymentStatus = paymentStatus
	uc.emitSideEffects(ctx, booking, refund, reason)

	return fromDomain(booking, refund, req.ActorID, now, reason), nil
}

// authorize пропускает владельца бронирования, менеджера или владельца площадки
func (uc *UseCase) authorize(ctx context.Context, b *domain.Booking, actorID int64) error {
	if b.UserID == actorID {
		return nil
	}

	turf, err := uc.turfClient.GetTurf(ctx, b.TurfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			uc.logger.Warn("CancelBooking: actor=%d is not owner, turf id=%d not found", actorID, b.TurfID)
			return ErrAccessDenied
		}
		uc.logger.Error("CancelBooking: failed to get turf id=%d: %v", b.TurfID, err)
		return fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	if !turf.IsManagedBy(actorID) {
		uc.logger.Warn("CancelBooking: actor=%d has no access to booking id=%d", actorID, b.ID)
		return ErrAccessDenied
	}

	return nil
}

// nextPaymentStatus вычисляет платежный статус после отмены.
// Неоплаченное бронирование остается unpaid, оплаченное переходит
// в refunded при полной сумме возврата и в partial_refund иначе
func nextPaymentStatus(b *domain.Booking, refund int64) domain.PaymentStatus {
	if b.PaymentStatus != domain.PaymentPaid {
		return b.PaymentStatus
	}
	if refund >= b.TotalPrice {
		return domain.PaymentRefunded
	}
	return domain.PaymentPartialRefund
}

// emitSideEffects публикует событие отмены и сбрасывает кэш отчета за день.
// Ошибки только логируются
func (uc *UseCase) emitSideEffects(ctx context.Context, b *domain.Booking, refund int64, reason string) {
	cancelled := notifier.BookingCancelled{
		BookingID:    b.ID,
		Reference:    b.Reference(),
		UserID:       b.UserID,
		TurfID:       b.TurfID,
		Date:         b.BookingDate.Format(domain.DateFormat),
		RefundAmount: refund,
		Reason:       reason,
		Email:        b.ContactEmail,
		Phone:        b.ContactPhone,
	}
	if err := uc.notifier.Notify(ctx, notifier.EventBookingCancelled, cancelled); err != nil {
		uc.logger.Error("CancelBooking: failed to publish cancellation for booking id=%d: %v", b.ID, err)
	}

	if err := uc.reportCache.Invalidate(ctx, b.TurfID, b.BookingDate); err != nil {
		uc.logger.Warn("CancelBooking: failed to invalidate report cache for turf=%d: %v", b.TurfID, err)
	}
}
