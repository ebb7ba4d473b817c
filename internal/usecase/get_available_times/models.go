package get_available_times

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса доступного времени
type Request struct {
	CompanyID uuid.UUID // ID компании
	UserID    uuid.UUID // ID сотрудника, чьё расписание запрашивается
	Date      string    // Дата в формате MM/DD/YYYY
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date  types.Date
	Slots []domain.AvailabilitySlot // Пустой список, если свободных слотов нет
}

// HasSlotStartingAt проверяет, начинается ли какой-либо слот ровно в момент t
func (r *Response) HasSlotStartingAt(t time.Time) bool {
	for _, slot := range r.Slots {
		if slot.Start.Equal(t) {
			return true
		}
	}
	return false
}
