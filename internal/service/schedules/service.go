package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

// Service сервис управления расписаниями: создание, изменение, удаление, перестановка приоритетов
type Service struct {
	scheduleRepo  ScheduleRepository
	ownerRegistry OwnerRegistry
	txManager     TransactionManager
	validate      *validator.Validate
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	ownerRegistry OwnerRegistry,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		ownerRegistry: ownerRegistry,
		txManager:     txManager,
		validate:      validator.New(),
		logger:        logger,
	}
}

// Add создает расписание
// Порядок проверок: владелец, формат повторения, формат времени, правила смены, приоритет.
// Все проверки выполняются до записи
func (s *Service) Add(ctx context.Context, req *models.AddScheduleRequest) (*models.ScheduleResponse, error) {
	owner := domain.Owner{CompanyID: req.CompanyID, UserID: req.UserID}
	s.logger.Info("Add: creating schedule %q for %s, priority=%v", req.Name, owner, req.Priority)

	// 1. Проверяем владельца
	if err := s.checkOwner(ctx, "Add", owner); err != nil {
		return nil, err
	}

	// 2. Проверяем формат запроса
	schedule, err := s.buildSchedule(req)
	if err != nil {
		s.logger.Warn("Add: validation failed: %v", err)
		return nil, err
	}
	schedule.Owner = owner

	// 3. Проверяем правила смены
	if err := checkScheduleRules(schedule); err != nil {
		s.logger.Warn("Add: schedule rules violated: %v", err)
		return nil, err
	}

	// 4. Назначаем приоритет и сохраняем в одной транзакции
	var created *domain.Schedule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.scheduleRepo.GetByOwnerOrderedByPriority(txCtx, owner)
		if err != nil {
			s.logger.Error("Add: failed to get schedules of %s: %v", owner, err)
			return fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
		}

		if req.Priority != nil {
			if priorityTaken(existing, *req.Priority) {
				s.logger.Warn("Add: priority %d already taken for %s", *req.Priority, owner)
				return ErrPriorityTaken
			}
			schedule.Priority = *req.Priority
		} else {
			schedule.Priority = nextPriority(existing)
		}

		created, err = s.scheduleRepo.Create(txCtx, schedule)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrPriorityConflict) {
				s.logger.Warn("Add: priority %d taken concurrently for %s", schedule.Priority, owner)
				return ErrPriorityTaken
			}
			s.logger.Error("Add: failed to create schedule: %v", err)
			return fmt.Errorf("%w: failed to create schedule: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Add: created schedule id=%s with priority=%d", created.ID, created.Priority)
	return models.FromDomainSchedule(created), nil
}

// Patch частично изменяет расписание
// Если передан новый приоритет, расписания владельца с приоритетом >= нового сдвигаются на 1
func (s *Service) Patch(ctx context.Context, id uuid.UUID, req *models.PatchScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Patch: updating schedule id=%s", id)

	// 1. Получаем текущее расписание
	current, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Patch: schedule id=%s not found", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Patch: failed to get schedule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	// 2. Проверяем владельца (новый или прежний)
	owner := current.Owner
	if req.CompanyID != nil {
		owner.CompanyID = *req.CompanyID
	}
	if req.UserID != nil {
		owner.UserID = *req.UserID
	}
	if err := s.checkOwner(ctx, "Patch", owner); err != nil {
		return nil, err
	}

	// 3. Собираем итоговое расписание и проверяем формат
	updated, err := s.mergePatch(current, req)
	if err != nil {
		s.logger.Warn("Patch: validation failed for schedule id=%s: %v", id, err)
		return nil, err
	}
	updated.Owner = owner

	// 4. Проверяем правила смены на итоговых значениях
	if err := checkScheduleRules(updated); err != nil {
		s.logger.Warn("Patch: schedule rules violated for schedule id=%s: %v", id, err)
		return nil, err
	}

	// 5. Перестановка приоритетов нужна при смене приоритета или владельца
	ownerChanged := owner != current.Owner
	rearrange := ownerChanged || (req.Priority != nil && *req.Priority != current.Priority)

	var result *domain.Schedule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if rearrange {
			shifted, err := s.scheduleRepo.BatchIncrementPriorities(txCtx, owner, updated.Priority, id)
			if err != nil {
				s.logger.Error("Patch: failed to shift priorities of %s: %v", owner, err)
				return fmt.Errorf("%w: failed to shift priorities: %w", ErrInternal, err)
			}
			s.logger.Info("Patch: shifted %d schedules of %s from priority %d", shifted, owner, updated.Priority)
		}

		result, err = s.scheduleRepo.Update(txCtx, updated)
		if err != nil {
			switch {
			case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
				return ErrScheduleNotFound
			case errors.Is(err, scheduleRepo.ErrPriorityConflict):
				return ErrPriorityTaken
			}
			s.logger.Error("Patch: failed to update schedule id=%s: %v", id, err)
			return fmt.Errorf("%w: failed to update schedule: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Patch: updated schedule id=%s, priority=%d", result.ID, result.Priority)
	return models.FromDomainSchedule(result), nil
}

// Delete удаляет расписание (мягкое удаление), приоритеты остальных не меняются
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("Delete: deleting schedule id=%s", id)

	deleted, err := s.scheduleRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Delete: schedule id=%s not found", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Delete: failed to delete schedule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to delete schedule: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted schedule id=%s", id)
	return models.FromDomainSchedule(deleted), nil
}

// List возвращает активные расписания владельца по возрастанию приоритета
func (s *Service) List(ctx context.Context, companyID, userID uuid.UUID) (*models.ScheduleListResponse, error) {
	owner := domain.Owner{CompanyID: companyID, UserID: userID}
	s.logger.Info("List: fetching schedules of %s", owner)

	if err := s.checkOwner(ctx, "List", owner); err != nil {
		return nil, err
	}

	list, err := s.scheduleRepo.GetByOwnerOrderedByPriority(ctx, owner)
	if err != nil {
		s.logger.Error("List: failed to get schedules of %s: %v", owner, err)
		return nil, fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
	}

	s.logger.Info("List: found %d schedules of %s", len(list), owner)
	return models.FromDomainScheduleList(list), nil
}

func (s *Service) checkOwner(ctx context.Context, op string, owner domain.Owner) error {
	exists, err := s.ownerRegistry.Exists(ctx, owner)
	if err != nil {
		s.logger.Error("%s: failed to check owner %s: %v", op, owner, err)
		return fmt.Errorf("%w: failed to check owner: %w", ErrInternal, err)
	}
	if !exists {
		s.logger.Warn("%s: owner %s not found", op, owner)
		return ErrOwnerNotFound
	}
	return nil
}

// buildSchedule разбирает запрос на создание в доменную модель
func (s *Service) buildSchedule(req *models.AddScheduleRequest) (*domain.Schedule, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	recurrence, err := parseRecurrence(req.RecurrenceType, req.Dates, req.Weekdays)
	if err != nil {
		return nil, err
	}

	shiftStart, err := parseTimeOfDay("shiftStart", req.ShiftStart)
	if err != nil {
		return nil, err
	}
	shiftEnd, err := parseTimeOfDay("shiftEnd", req.ShiftEnd)
	if err != nil {
		return nil, err
	}
	slotDuration, err := parseSlotDuration(req.SlotDuration)
	if err != nil {
		return nil, err
	}
	breaks, err := parseBreaks(req.Breaks)
	if err != nil {
		return nil, err
	}

	return &domain.Schedule{
		Name:         req.Name,
		Recurrence:   recurrence,
		ShiftStart:   shiftStart,
		ShiftEnd:     shiftEnd,
		SlotDuration: slotDuration,
		Breaks:       breaks,
	}, nil
}

// mergePatch накладывает переданные поля на копию текущего расписания
func (s *Service) mergePatch(current *domain.Schedule, req *models.PatchScheduleRequest) (*domain.Schedule, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	updated := current.Clone()

	// Смена типа повторения без новых дат недопустима
	if req.RecurrenceType != nil && req.Dates == nil {
		return nil, ErrRecurrenceTypeChangeRequiresDates
	}

	if req.Dates != nil || req.Weekdays != nil {
		recurrenceType := string(current.Recurrence.Type)
		if req.RecurrenceType != nil {
			recurrenceType = *req.RecurrenceType
		}
		dates := req.Dates
		if dates == nil {
			dates = current.Recurrence.DateTokens()
		}
		weekdays := req.Weekdays
		if weekdays == nil && recurrenceType == string(current.Recurrence.Type) {
			weekdays = current.Recurrence.WeekdayTokens()
		}

		recurrence, err := parseRecurrence(recurrenceType, dates, weekdays)
		if err != nil {
			return nil, err
		}
		updated.Recurrence = recurrence
	}

	if req.Name != nil {
		updated.Name = *req.Name
	}

	if req.ShiftStart != nil {
		shiftStart, err := parseTimeOfDay("shiftStart", *req.ShiftStart)
		if err != nil {
			return nil, err
		}
		updated.ShiftStart = shiftStart
	}

	if req.ShiftEnd != nil {
		shiftEnd, err := parseTimeOfDay("shiftEnd", *req.ShiftEnd)
		if err != nil {
			return nil, err
		}
		updated.ShiftEnd = shiftEnd
	}

	if req.SlotDuration != nil {
		slotDuration, err := parseSlotDuration(*req.SlotDuration)
		if err != nil {
			return nil, err
		}
		updated.SlotDuration = slotDuration
	}

	if req.Breaks != nil {
		breaks, err := parseBreaks(req.Breaks)
		if err != nil {
			return nil, err
		}
		updated.Breaks = breaks
	}

	if req.Priority != nil {
		updated.Priority = *req.Priority
	}

	return updated, nil
}
