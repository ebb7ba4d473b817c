package patch_service_rules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/companies/models"
)

type CompanyService interface {
	PatchServiceRules(ctx context.Context, id uuid.UUID, req *models.PatchServiceRulesRequest) (*models.CompanyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
