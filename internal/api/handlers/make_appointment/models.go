package make_appointment

import (
	"time"

	"github.com/google/uuid"

	makeAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/make_appointment"
)

// MakeAppointmentRequest HTTP request model
type MakeAppointmentRequest struct {
	CompanyID   uuid.UUID `json:"companyId"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Time        string    `json:"time"` // RFC 3339, "2024-12-02T10:00:00Z"
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"` // E.164, "+79991234567"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Time         time.Time `json:"time"`
	CompanyID    uuid.UUID `json:"companyId"`
	UserID       uuid.UUID `json:"userId"`
	ClientUserID uuid.UUID `json:"clientUserId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *MakeAppointmentRequest) ToUseCaseRequest() (*makeAppointment.Request, error) {
	startsAt, err := time.Parse(time.RFC3339, r.Time)
	if err != nil {
		return nil, err
	}

	return &makeAppointment.Request{
		CompanyID:   r.CompanyID,
		UserID:      r.UserID,
		Title:       r.Title,
		Time:        startsAt,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *makeAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		Title:        resp.Title,
		Time:         resp.Time,
		CompanyID:    resp.CompanyID,
		UserID:       resp.UserID,
		ClientUserID: resp.ClientUserID,
		CreatedAt:    resp.CreatedAt,
	}
}
