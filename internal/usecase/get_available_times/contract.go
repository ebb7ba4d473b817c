package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByOwnerOrderedByPriority(ctx context.Context, owner domain.Owner) ([]*domain.Schedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByOwnerAndTimeRange(ctx context.Context, owner domain.Owner, from, to time.Time) ([]*domain.Appointment, error)
}

// OwnerRegistry интерфейс реестра владельцев расписаний (компания + сотрудник)
type OwnerRegistry interface {
	Exists(ctx context.Context, owner domain.Owner) (bool, error)
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
