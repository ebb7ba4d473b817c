package schedules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByOwnerOrderedByPriority(ctx context.Context, owner domain.Owner) ([]*domain.Schedule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	Update(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	BatchIncrementPriorities(ctx context.Context, owner domain.Owner, threshold int, excludeID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)
}

// OwnerRegistry интерфейс реестра владельцев расписаний
type OwnerRegistry interface {
	Exists(ctx context.Context, owner domain.Owner) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
