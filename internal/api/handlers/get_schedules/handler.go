package get_schedules

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidUserID    = "некорректный ID сотрудника"
	msgOwnerNotFound    = "сотрудник компании не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/users/{userId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := uuid.Parse(vars["companyId"])
	if err != nil {
		h.logger.Warn("GET /companies/{id}/users/{id}/schedules - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		h.logger.Warn("GET /companies/{id}/users/{id}/schedules - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.List(r.Context(), companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrOwnerNotFound):
			h.logger.Warn("GET /companies/{id}/users/{id}/schedules - Owner not found: company_id=%s, user_id=%s",
				companyID, userID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		default:
			h.logger.Error("GET /companies/{id}/users/{id}/schedules - Failed to list schedules: company_id=%s, user_id=%s, error=%v",
				companyID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/users/{id}/schedules - Schedules retrieved: company_id=%s, user_id=%s, count=%d",
		companyID, userID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
