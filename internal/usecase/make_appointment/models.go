package make_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание записи
type Request struct {
	CompanyID   uuid.UUID // ID компании
	UserID      uuid.UUID // ID сотрудника, к которому записываются
	Title       string    `validate:"required,max=255"`
	Time        time.Time // Начало слота
	ClientName  string    `validate:"required,max=255"`
	ClientPhone string    `validate:"required,e164"` // Телефон клиента, по нему клиент находится или создаётся
}

// Response модель ответа с созданной записью
type Response struct {
	ID           uuid.UUID // ID записи
	Title        string    // Заголовок
	Time         time.Time // Начало слота
	CompanyID    uuid.UUID // ID компании
	UserID       uuid.UUID // ID сотрудника
	ClientUserID uuid.UUID // ID клиента
	CreatedAt    time.Time // Время создания
}
