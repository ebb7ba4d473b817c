package get_available_times

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case для расчёта доступного для записи времени
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	ownerRegistry   OwnerRegistry
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором трактуются время смены и даты
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	ownerRegistry OwnerRegistry,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		ownerRegistry:   ownerRegistry,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Location возвращает часовой пояс расчёта
func (uc *UseCase) Location() *time.Location {
	return uc.location
}

// Execute выполняет расчёт свободных слотов на дату
// Чистое чтение: ничего не записывает, повторный вызов при неизменных данных даёт тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: company=%s, user=%s, date=%s", req.CompanyID, req.UserID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	owner := domain.Owner{CompanyID: req.CompanyID, UserID: req.UserID}

	// 2. Проверяем существование владельца расписания
	exists, err := uc.ownerRegistry.Exists(ctx, owner)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to check owner %s: %v", owner, err)
		return nil, fmt.Errorf("%w: failed to check owner: %w", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("GetAvailableTimes: owner %s not found", owner)
		return nil, ErrOwnerNotFound
	}

	// 3. Получаем расписания по возрастанию приоритета
	schedules, err := uc.scheduleRepo.GetByOwnerOrderedByPriority(ctx, owner)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get schedules for %s: %v", owner, err)
		return nil, fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
	}

	// 4. Сводим действующие на дату расписания в одно
	effective, err := MergeSchedules(schedules, date)
	if err != nil {
		if errors.Is(err, ErrNoSchedulesConfigured) {
			uc.logger.Warn("GetAvailableTimes: no schedules for %s on %s (total=%d)", owner, date, len(schedules))
		}
		return nil, err
	}

	// 5. Получаем записи на этот день
	dayStart := date.Start(uc.location)
	dayEnd := date.AddDays(1).Start(uc.location)

	appointments, err := uc.appointmentRepo.GetByOwnerAndTimeRange(ctx, owner, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get appointments for %s: %v", owner, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 6. Генерируем слоты с учётом перерывов, прошедшего времени и занятых записей
	slots := GenerateSlots(effective, date, uc.location, appointments, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableTimes: %d slots for %s on %s (shift %s-%s, breaks=%d, booked=%d)",
		len(slots), owner, date, effective.ShiftStart, effective.ShiftEnd, len(effective.Breaks), len(appointments))

	return &Response{Date: date, Slots: slots}, nil
}

