package patch_service_rules

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/companies"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/companies/models"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidGraceTime   = "некорректный формат времени отмены, ожидается HH:MM:SS"
	msgCompanyNotFound    = "компания не найдена"
)

type Handler struct {
	service CompanyService
	logger  Logger
}

func NewHandler(service CompanyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/companies/{companyId}/service-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(mux.Vars(r)["companyId"])
	if err != nil {
		h.logger.Warn("PATCH /companies/{id}/service-rules - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req models.PatchServiceRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /companies/{id}/service-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.PatchServiceRules(r.Context(), companyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, companies.ErrInvalidFormat):
			h.logger.Warn("PATCH /companies/{id}/service-rules - Invalid grace time: company_id=%s, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidGraceTime)

		case errors.Is(err, companies.ErrOwnerNotFound):
			h.logger.Warn("PATCH /companies/{id}/service-rules - Company not found: company_id=%s", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("PATCH /companies/{id}/service-rules - Failed to update rules: company_id=%s, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /companies/{id}/service-rules - Service rules updated: company_id=%s, grace_time=%s",
		companyID, result.CancellationGraceTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
