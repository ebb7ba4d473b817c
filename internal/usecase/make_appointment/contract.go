package make_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_times"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByExactTime(ctx context.Context, owner domain.Owner, at time.Time) (*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// OwnerRegistry интерфейс реестра владельцев и клиентов
type OwnerRegistry interface {
	Exists(ctx context.Context, owner domain.Owner) (bool, error)
	GetUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AvailabilityProvider интерфейс расчёта свободного времени
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *get_available_times.Request) (*get_available_times.Response, error)
	Location() *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
