package patch_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

const (
	msgInvalidScheduleID   = "некорректный ID расписания"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidFormat       = "некорректный формат дат, времени или дней недели"
	msgShiftStartAfterEnd  = "начало смены должно быть раньше её окончания"
	msgDurationTooLong     = "длительность слота превышает длину смены"
	msgBreakBeforeShift    = "перерыв начинается раньше смены"
	msgTypeChangeNeedDates = "при смене типа повторения нужно передать даты"
	msgScheduleNotFound    = "расписание не найдено"
	msgOwnerNotFound       = "сотрудник компании не найден"
	msgPriorityTaken       = "приоритет уже занят другим расписанием"
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

// Handle PATCH /api/v1/schedules/{scheduleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(mux.Vars(r)["scheduleId"])
	if err != nil {
		h.logger.Warn("PATCH /schedules/{id} - Invalid schedule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req models.PatchScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Patch(r.Context(), scheduleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidFormat):
			h.logger.Warn("PATCH /schedules/{id} - Invalid format: schedule_id=%s, error=%v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidFormat)

		case errors.Is(err, schedules.ErrShiftStartAfterEnd):
			h.logger.Warn("PATCH /schedules/{id} - Shift start after end: schedule_id=%s", scheduleID)
			handlers.RespondBadRequest(w, msgShiftStartAfterEnd)

		case errors.Is(err, schedules.ErrDurationExceedsShift):
			h.logger.Warn("PATCH /schedules/{id} - Slot duration exceeds shift: schedule_id=%s", scheduleID)
			handlers.RespondBadRequest(w, msgDurationTooLong)

		case errors.Is(err, schedules.ErrBreakBeforeShiftStart):
			h.logger.Warn("PATCH /schedules/{id} - Break before shift start: schedule_id=%s", scheduleID)
			handlers.RespondBadRequest(w, msgBreakBeforeShift)

		case errors.Is(err, schedules.ErrRecurrenceTypeChangeRequiresDates):
			h.logger.Warn("PATCH /schedules/{id} - Recurrence type change without dates: schedule_id=%s", scheduleID)
			handlers.RespondBadRequest(w, msgTypeChangeNeedDates)

		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("PATCH /schedules/{id} - Schedule not found: schedule_id=%s", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, schedules.ErrOwnerNotFound):
			h.logger.Warn("PATCH /schedules/{id} - Owner not found: schedule_id=%s", scheduleID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, schedules.ErrPriorityTaken):
			h.logger.Warn("PATCH /schedules/{id} - Priority conflict: schedule_id=%s", scheduleID)
			handlers.RespondConflict(w, msgPriorityTaken)

		default:
			h.logger.Error("PATCH /schedules/{id} - Failed to patch schedule: schedule_id=%s, error=%v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedules/{id} - Schedule updated: schedule_id=%s, priority=%d", result.ID, result.Priority)
	handlers.RespondJSON(w, http.StatusOK, result)
}
