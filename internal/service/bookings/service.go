package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/service/bookings/models"
)

// Service сервис чтения бронирований и служебных переходов статуса
// Создание и отмена живут в отдельных use case'ах: там транзакции и
// побочные эффекты, здесь только чтение и простые обновления
type Service struct {
	bookingRepo BookingRepository
	turfClient  TurfServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	turfClient TurfServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		turfClient:  turfClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, менеджер и владелец
// площадки - любые бронирования своей площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTurfBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включение отменённых
// Доступно только менеджерам и владельцу площадки
func (s *Service) GetTurfBookings(ctx context.Context, req *models.GetTurfBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTurfBookings: fetching bookings for turf=%d, user=%d", req.TurfID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.TurfID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTurfBookings: invalid filter for turf=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTurfWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTurfBookings: repository error for turf=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: GetTurfBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTurfBookings: successfully fetched %d bookings for turf=%d", len(bookings), req.TurfID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования (confirmed, completed, no_show)
// Доступно только менеджерам площадки; отмена идет через отдельный use case,
// бронирования в терминальном статусе не изменяются
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, booking.TurfID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Отмена освобождает слоты и считает возврат - этот путь здесь закрыт
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d must go through the cancel flow", bookingID)
		return fmt.Errorf("%w: use the cancellation endpoint", ErrInvalidStatus)
	}

	if booking.IsTerminal() {
		s.logger.Warn("UpdateStatus: booking id=%d is terminal (%s)", bookingID, booking.Status)
		return ErrTerminalStatus
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// MarkPaid фиксирует оплату бронирования (unpaid -> paid)
// Вызывается после подтверждения внешнего платежа; возвраты выставляет
// только движок отмены
func (s *Service) MarkPaid(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkPaid: marking booking id=%d as paid by user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("MarkPaid: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkPaid: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("MarkPaid: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, err
	}

	if booking.IsTerminal() {
		s.logger.Warn("MarkPaid: booking id=%d is terminal (%s)", bookingID, booking.Status)
		return nil, ErrTerminalStatus
	}

	if booking.PaymentStatus != domain.PaymentUnpaid {
		s.logger.Warn("MarkPaid: booking id=%d has payment status %s", bookingID, booking.PaymentStatus)
		return nil, fmt.Errorf("%w: payment status is %s", ErrInvalidPaymentStatus, booking.PaymentStatus)
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkPaid: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	booking.PaymentStatus = domain.PaymentPaid
	s.logger.Info("MarkPaid: booking id=%d marked as paid", bookingID)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, booking.TurfID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь управляет площадкой
func (s *Service) checkManagerAccess(ctx context.Context, turfID int64, userID int64) error {
	turf, err := s.turfClient.GetTurf(ctx, turfID)
	if err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			s.logger.Warn("checkManagerAccess: turf id=%d not found", turfID)
			return ErrTurfNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get turf id=%d: %v", turfID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get turf: %v", ErrInternal, err)
	}

	if !turf.IsManagedBy(userID) {
		s.logger.Warn("checkManagerAccess: user=%d does not manage turf=%d", userID, turfID)
		return ErrAccessDenied
	}

	s.logger.Info("checkManagerAccess: user=%d manages turf=%d", userID, turfID)
	return nil
}
