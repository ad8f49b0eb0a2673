package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-TurfService/internal/usecase/generate_slots"
)

const (
	msgInvalidTurfID      = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTurfNotFound       = "площадка не найдена"
	msgRangeTooLong       = "диапазон генерации не может превышать 30 дней"
	msgInvalidRange       = "конец диапазона раньше начала"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/turfs/{turfId}/slots/generate
// Тело: {"date": "..."} для одного дня или {"startDate": "...", "endDate": "..."} для диапазона
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfID, err := strconv.ParseInt(vars["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /turfs/{id}/slots/generate - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turfs/{id}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsRange() {
		h.handleRange(w, r, turfID, &req)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(turfID)
	if err != nil {
		h.logger.Warn("POST /turfs/{id}/slots/generate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, turfID, err)
		return
	}

	status := http.StatusOK
	if result.Generated {
		status = http.StatusCreated
	}

	h.logger.Info("POST /turfs/{id}/slots/generate - Slots ensured: turf_id=%d, date=%s, generated=%t",
		turfID, req.Date, result.Generated)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}

// handleRange обрабатывает пакетную генерацию на диапазон дат
func (h *Handler) handleRange(w http.ResponseWriter, r *http.Request, turfID int64, req *GenerateSlotsRequest) {
	useCaseReq, err := req.ToUseCaseRangeRequest(turfID)
	if err != nil {
		h.logger.Warn("POST /turfs/{id}/slots/generate - Failed to parse range request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.ExecuteRange(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, turfID, err)
		return
	}

	h.logger.Info("POST /turfs/{id}/slots/generate - Range processed: turf_id=%d, days=%d, created=%d",
		turfID, result.DaysProcessed, result.SlotsCreated)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseRangeResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, turfID int64, err error) {
	switch {
	case errors.Is(err, generateSlots.ErrTurfNotFound):
		h.logger.Warn("POST /turfs/{id}/slots/generate - Turf not found: turf_id=%d", turfID)
		handlers.RespondNotFound(w, msgTurfNotFound)

	case errors.Is(err, generateSlots.ErrRangeTooLong):
		h.logger.Warn("POST /turfs/{id}/slots/generate - Range too long: turf_id=%d", turfID)
		handlers.RespondUnprocessable(w, msgRangeTooLong)

	case errors.Is(err, generateSlots.ErrInvalidRange):
		h.logger.Warn("POST /turfs/{id}/slots/generate - Invalid range: turf_id=%d", turfID)
		handlers.RespondBadRequest(w, msgInvalidRange)

	case errors.Is(err, generateSlots.ErrInvalidDate), errors.Is(err, generateSlots.ErrInvalidInput):
		h.logger.Warn("POST /turfs/{id}/slots/generate - Invalid input: turf_id=%d, error=%v", turfID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)

	default:
		h.logger.Error("POST /turfs/{id}/slots/generate - Failed to generate slots: turf_id=%d, error=%v",
			turfID, err)
		handlers.RespondInternalError(w)
	}
}
