package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AppointmentResponse запись в ответе
type AppointmentResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Time         time.Time `json:"time"`
	CompanyID    uuid.UUID `json:"companyId"`
	UserID       uuid.UUID `json:"userId"`
	ClientUserID uuid.UUID `json:"clientUserId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromDomainAppointment конвертирует доменную модель в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           a.ID,
		Title:        a.Title,
		Time:         a.Time,
		CompanyID:    a.Owner.CompanyID,
		UserID:       a.Owner.UserID,
		ClientUserID: a.ClientUserID,
		CreatedAt:    a.CreatedAt,
	}
}
