package get_available_times

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableTimes "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_times"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidUserID    = "некорректный ID сотрудника"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается MM/DD/YYYY"
	msgOwnerNotFound    = "сотрудник компании не найден"
	msgNoSchedules      = "на выбранную дату нет ни одного расписания"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/users/{userId}/available-times
// Query params: date (required, MM/DD/YYYY)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := uuid.Parse(vars["companyId"])
	if err != nil {
		h.logger.Warn("GET /companies/{id}/users/{id}/available-times - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		h.logger.Warn("GET /companies/{id}/users/{id}/available-times - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /companies/{id}/users/{id}/available-times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableTimes.Request{
		CompanyID: companyID,
		UserID:    userID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrInvalidFormat):
			h.logger.Warn("GET /companies/{id}/users/{id}/available-times - Invalid date: date=%s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableTimes.ErrOwnerNotFound):
			h.logger.Warn("GET /companies/{id}/users/{id}/available-times - Owner not found: company_id=%s, user_id=%s",
				companyID, userID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, getAvailableTimes.ErrNoSchedulesConfigured):
			h.logger.Warn("GET /companies/{id}/users/{id}/available-times - No schedules: company_id=%s, user_id=%s, date=%s",
				companyID, userID, date)
			handlers.RespondNotFound(w, msgNoSchedules)

		default:
			h.logger.Error("GET /companies/{id}/users/{id}/available-times - Failed to get times: company_id=%s, user_id=%s, error=%v",
				companyID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/users/{id}/available-times - Times retrieved: company_id=%s, user_id=%s, date=%s, slots_count=%d",
		companyID, userID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
