package make_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	makeAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/make_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidFormat      = "некорректные данные записи: проверьте заголовок, имя и телефон"
	msgPastTime           = "нельзя записаться на прошедшее время"
	msgTimeNotAvailable   = "выбранное время недоступно для записи"
	msgOwnerNotFound      = "сотрудник компании не найден"
	msgNoSchedules        = "на выбранную дату нет ни одного расписания"
	msgTimeAlreadyTaken   = "выбранное время уже занято"
)

type Handler struct {
	useCase MakeAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MakeAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MakeAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid time: time=%q, error=%v", req.Time, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, makeAppointment.ErrInvalidFormat):
			h.logger.Warn("POST /appointments - Invalid format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFormat)

		case errors.Is(err, makeAppointment.ErrPastTime):
			h.logger.Warn("POST /appointments - Past time: company_id=%s, user_id=%s, time=%s",
				req.CompanyID, req.UserID, req.Time)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, makeAppointment.ErrTimeNotAvailable):
			h.logger.Warn("POST /appointments - Time not available: company_id=%s, user_id=%s, time=%s",
				req.CompanyID, req.UserID, req.Time)
			handlers.RespondBadRequest(w, msgTimeNotAvailable)

		case errors.Is(err, makeAppointment.ErrOwnerNotFound):
			h.logger.Warn("POST /appointments - Owner not found: company_id=%s, user_id=%s", req.CompanyID, req.UserID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, makeAppointment.ErrNoSchedulesConfigured):
			h.logger.Warn("POST /appointments - No schedules: company_id=%s, user_id=%s, time=%s",
				req.CompanyID, req.UserID, req.Time)
			handlers.RespondNotFound(w, msgNoSchedules)

		case errors.Is(err, makeAppointment.ErrTimeAlreadyTaken):
			h.logger.Warn("POST /appointments - Time already taken: company_id=%s, user_id=%s, time=%s",
				req.CompanyID, req.UserID, req.Time)
			handlers.RespondConflict(w, msgTimeAlreadyTaken)

		default:
			h.logger.Error("POST /appointments - Failed to make appointment: company_id=%s, user_id=%s, error=%v",
				req.CompanyID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%s, company_id=%s, user_id=%s",
		result.ID, result.CompanyID, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
