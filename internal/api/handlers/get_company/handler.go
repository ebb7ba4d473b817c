package get_company

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/companies"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgCompanyNotFound  = "компания не найдена"
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

// Handle GET /api/v1/companies/{companyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(mux.Vars(r)["companyId"])
	if err != nil {
		h.logger.Warn("GET /companies/{id} - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.GetCompany(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, companies.ErrOwnerNotFound) {
			h.logger.Warn("GET /companies/{id} - Company not found: company_id=%s", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}
		h.logger.Error("GET /companies/{id} - Failed to get company: company_id=%s, error=%v", companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companies/{id} - Company retrieved: company_id=%s", companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
