package set_slot_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	manageSlots "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
)

const (
	msgInvalidTurfID      = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTurfNotFound       = "площадка не найдена"
	msgSlotNotFound       = "слот не найден"
	msgForbidden          = "доступ запрещен"
	msgSlotBooked         = "слот занят бронированием, сначала отмените его"
	msgInvalidStatus      = "недопустимый статус слота"
)

// SetSlotStatusRequest HTTP request model
type SetSlotStatusRequest struct {
	SlotIDs []int64 `json:"slotIds"`
	Status  string  `json:"status"` // available | unavailable | maintenance
	Reason  *string `json:"reason,omitempty"`
}

// SetSlotStatusResponse HTTP response model
type SetSlotStatusResponse struct {
	UpdatedSlots int `json:"updatedSlots"`
}

type Handler struct {
	useCase ManageSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ManageSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/turfs/{turfId}/slots/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfID, err := strconv.ParseInt(vars["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/slots/status - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /turfs/{id}/slots/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetSlotStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turfs/{id}/slots/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.SetStatus(r.Context(), &manageSlots.SetStatusRequest{
		TurfID:  turfID,
		SlotIDs: req.SlotIDs,
		ActorID: userID,
		Status:  req.Status,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, manageSlots.ErrTurfNotFound):
			h.logger.Warn("PATCH /turfs/{id}/slots/status - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, manageSlots.ErrSlotNotFound):
			h.logger.Warn("PATCH /turfs/{id}/slots/status - Slot not found: turf_id=%d, slot_ids=%v",
				turfID, req.SlotIDs)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, manageSlots.ErrAccessDenied):
			h.logger.Warn("PATCH /turfs/{id}/slots/status - Access denied: turf_id=%d, user_id=%d",
				turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, manageSlots.ErrSlotBooked):
			h.logger.Warn("PATCH /turfs/{id}/slots/status - Slot booked: turf_id=%d, slot_ids=%v",
				turfID, req.SlotIDs)
			handlers.RespondConflict(w, msgSlotBooked)

		case errors.Is(err, manageSlots.ErrInvalidStatus):
			h.logger.Warn("PATCH /turfs/{id}/slots/status - Invalid status: turf_id=%d, status=%s",
				turfID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, manageSlots.ErrInvalidInput):
			h.logger.Warn("PATCH /turfs/{id}/slots/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /turfs/{id}/slots/status - Failed to update slots: turf_id=%d, error=%v",
				turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turfs/{id}/slots/status - Slots updated: turf_id=%d, count=%d, status=%s",
		turfID, result.UpdatedSlots, req.Status)
	handlers.RespondJSON(w, http.StatusOK, SetSlotStatusResponse{UpdatedSlots: result.UpdatedSlots})
}
