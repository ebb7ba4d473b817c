package add_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFormat      = "некорректный формат дат, времени или дней недели"
	msgShiftStartAfterEnd = "начало смены должно быть раньше её окончания"
	msgDurationTooLong    = "длительность слота превышает длину смены"
	msgBreakBeforeShift   = "перерыв начинается раньше смены"
	msgOwnerNotFound      = "сотрудник компании не найден"
	msgPriorityTaken      = "приоритет уже занят другим расписанием"
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

// Handle POST /api/v1/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Add(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidFormat):
			h.logger.Warn("POST /schedules - Invalid format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFormat)

		case errors.Is(err, schedules.ErrShiftStartAfterEnd):
			h.logger.Warn("POST /schedules - Shift start after end: shift_start=%s, shift_end=%s", req.ShiftStart, req.ShiftEnd)
			handlers.RespondBadRequest(w, msgShiftStartAfterEnd)

		case errors.Is(err, schedules.ErrDurationExceedsShift):
			h.logger.Warn("POST /schedules - Slot duration exceeds shift: slot_duration=%s", req.SlotDuration)
			handlers.RespondBadRequest(w, msgDurationTooLong)

		case errors.Is(err, schedules.ErrBreakBeforeShiftStart):
			h.logger.Warn("POST /schedules - Break before shift start: shift_start=%s", req.ShiftStart)
			handlers.RespondBadRequest(w, msgBreakBeforeShift)

		case errors.Is(err, schedules.ErrOwnerNotFound):
			h.logger.Warn("POST /schedules - Owner not found: company_id=%s, user_id=%s", req.CompanyID, req.UserID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, schedules.ErrPriorityTaken):
			h.logger.Warn("POST /schedules - Priority taken: company_id=%s, user_id=%s", req.CompanyID, req.UserID)
			handlers.RespondConflict(w, msgPriorityTaken)

		default:
			h.logger.Error("POST /schedules - Failed to add schedule: company_id=%s, user_id=%s, error=%v",
				req.CompanyID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules - Schedule created: schedule_id=%s, company_id=%s, user_id=%s, priority=%d",
		result.ID, result.CompanyID, result.UserID, result.Priority)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
