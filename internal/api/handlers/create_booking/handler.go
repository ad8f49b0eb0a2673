package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TurfService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTurfNotFound       = "площадка не найдена"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "выбранный слот недоступен для бронирования"
	msgSlotInPast         = "нельзя забронировать прошедший слот"
	msgNonContiguous      = "слоты должны идти подряд"
	msgInvalidContactInfo = "необходимо указать имя, телефон и email"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTurfNotFound):
			h.logger.Warn("POST /bookings - Turf not found: turf_id=%d", req.TurfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: turf_id=%d, slot_ids=%v", req.TurfID, req.SlotIDs)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: turf_id=%d, slot_ids=%v", req.TurfID, req.SlotIDs)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: turf_id=%d, slot_ids=%v", req.TurfID, req.SlotIDs)
			handlers.RespondUnprocessable(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrNonContiguousSlots):
			h.logger.Warn("POST /bookings - Non-contiguous slots: turf_id=%d, slot_ids=%v", req.TurfID, req.SlotIDs)
			handlers.RespondUnprocessable(w, msgNonContiguous)

		case errors.Is(err, createBooking.ErrInvalidContactInfo):
			h.logger.Warn("POST /bookings - Invalid contact info: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidContactInfo)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, turf_id=%d, error=%v",
				userID, req.TurfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, user_id=%d",
		result.ID, result.Reference, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
