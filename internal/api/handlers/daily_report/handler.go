package daily_report

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/domain"
	dailyReport "github.com/m04kA/SMC-TurfService/internal/usecase/daily_report"
)

const (
	msgInvalidTurfID = "некорректный ID площадки"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID = "отсутствует ID пользователя"
	msgTurfNotFound  = "площадка не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	useCase DailyReportUseCase
	logger  Logger
}

func NewHandler(useCase DailyReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/reports/daily
// Query params: date (обязательный, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfID, err := strconv.ParseInt(vars["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/reports/daily - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /turfs/{id}/reports/daily - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/reports/daily - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	report, err := h.useCase.Execute(r.Context(), &dailyReport.Request{
		TurfID:  turfID,
		Date:    date,
		ActorID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, dailyReport.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/reports/daily - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, dailyReport.ErrAccessDenied):
			h.logger.Warn("GET /turfs/{id}/reports/daily - Access denied: turf_id=%d, user_id=%d",
				turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, dailyReport.ErrInvalidInput):
			h.logger.Warn("GET /turfs/{id}/reports/daily - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /turfs/{id}/reports/daily - Failed to build report: turf_id=%d, error=%v",
				turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/reports/daily - Report built: turf_id=%d, date=%s",
		turfID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, report)
}
