package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// PatchServiceRulesRequest запрос на изменение правил обслуживания компании
// nil означает "не менять"
type PatchServiceRulesRequest struct {
	CancellationGraceTime *string `json:"cancellationGraceTime,omitempty"` // HH:MM:SS
	ServiceRules          *string `json:"serviceRules,omitempty"`
}

// CompanyResponse компания в ответе
type CompanyResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	CancellationGraceTime string    `json:"cancellationGraceTime"`
	ServiceRules          *string   `json:"serviceRules,omitempty"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// FromDomainCompany конвертирует доменную модель в ответ
func FromDomainCompany(c *domain.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		CancellationGraceTime: types.FormatClockDuration(c.CancellationGraceTime),
		ServiceRules:          c.ServiceRules,
		UpdatedAt:             c.UpdatedAt,
	}
}
