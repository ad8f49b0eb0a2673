package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	turfClient "github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/service/slots/models"
	"github.com/m04kA/SMC-TurfService/internal/usecase/generate_slots"
)

// Service сервис чтения расписания слотов
// Первое обращение к дню без слотов лениво генерирует сетку через
// генератор; повторные чтения идут напрямую из хранилища
type Service struct {
	slotRepo   SlotRepository
	turfClient TurfServiceClient
	generator  SlotGenerator
	logger     Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	turfClient TurfServiceClient,
	generator SlotGenerator,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:   slotRepo,
		turfClient: turfClient,
		generator:  generator,
		logger:     logger,
	}
}

// GetDaySlots получает все слоты площадки на дату, упорядоченные по номеру
func (s *Service) GetDaySlots(ctx context.Context, turfID int64, date time.Time) (*models.DaySlotsResponse, error) {
	s.logger.Info("GetDaySlots: fetching slots for turf=%d, date=%s", turfID, date.Format("2006-01-02"))

	if turfID <= 0 {
		return nil, fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := s.turfClient.GetTurf(ctx, turfID); err != nil {
		if errors.Is(err, turfClient.ErrTurfNotFound) {
			s.logger.Warn("GetDaySlots: turf id=%d not found", turfID)
			return nil, ErrTurfNotFound
		}
		s.logger.Error("GetDaySlots: failed to get turf id=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: GetDaySlots - failed to get turf: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.GetByTurfAndDate(ctx, turfID, date)
	if err != nil {
		s.logger.Error("GetDaySlots: repository error for turf=%d: %v", turfID, err)
		return nil, fmt.Errorf("%w: GetDaySlots - repository error: %v", ErrInternal, err)
	}

	// Первый просмотр дня создает сетку слотов
	if len(slots) == 0 {
		gen, err := s.generator.Execute(ctx, &generate_slots.Request{TurfID: turfID, Date: date})
		if err != nil {
			switch {
			case errors.Is(err, generate_slots.ErrTurfNotFound):
				return nil, ErrTurfNotFound
			case errors.Is(err, generate_slots.ErrInvalidDate), errors.Is(err, generate_slots.ErrInvalidInput):
				return nil, fmt.Errorf("%w: GetDaySlots - %v", ErrInvalidInput, err)
			default:
				s.logger.Error("GetDaySlots: failed to generate slots for turf=%d: %v", turfID, err)
				return nil, fmt.Errorf("%w: GetDaySlots - failed to generate slots: %v", ErrInternal, err)
			}
		}
		slots = gen.Slots
	}

	s.logger.Info("GetDaySlots: successfully fetched %d slots for turf=%d", len(slots), turfID)
	return models.FromDomainSlotList(turfID, date, slots), nil
}
