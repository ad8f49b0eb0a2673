package set_slot_pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

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
	msgInvalidPricing     = "укажите либо цену, либо множитель в допустимых границах"
)

// SetSlotPricingRequest HTTP request model
// Ровно одно из полей price/multiplier должно быть задано
type SetSlotPricingRequest struct {
	SlotIDs    []int64          `json:"slotIds"`
	Price      *int64           `json:"price,omitempty"`
	Multiplier *decimal.Decimal `json:"multiplier,omitempty"`
}

// SetSlotPricingResponse HTTP response model
type SetSlotPricingResponse struct {
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

// Handle PATCH /api/v1/turfs/{turfId}/slots/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfID, err := strconv.ParseInt(vars["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/slots/pricing - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /turfs/{id}/slots/pricing - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetSlotPricingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turfs/{id}/slots/pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.SetPricing(r.Context(), &manageSlots.SetPricingRequest{
		TurfID:     turfID,
		SlotIDs:    req.SlotIDs,
		ActorID:    userID,
		Price:      req.Price,
		Multiplier: req.Multiplier,
	})
	if err != nil {
		switch {
		case errors.Is(err, manageSlots.ErrTurfNotFound):
			h.logger.Warn("PATCH /turfs/{id}/slots/pricing - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, manageSlots.ErrSlotNotFound):
			h.logger.Warn("PATCH /turfs/{id}/slots/pricing - Slot not found: turf_id=%d, slot_ids=%v",
				turfID, req.SlotIDs)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, manageSlots.ErrAccessDenied):
			h.logger.Warn("PATCH /turfs/{id}/slots/pricing - Access denied: turf_id=%d, user_id=%d",
				turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, manageSlots.ErrInvalidInput):
			h.logger.Warn("PATCH /turfs/{id}/slots/pricing - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPricing)

		default:
			h.logger.Error("PATCH /turfs/{id}/slots/pricing - Failed to update pricing: turf_id=%d, error=%v",
				turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turfs/{id}/slots/pricing - Pricing updated: turf_id=%d, count=%d",
		turfID, result.UpdatedSlots)
	handlers.RespondJSON(w, http.StatusOK, SetSlotPricingResponse{UpdatedSlots: result.UpdatedSlots})
}
