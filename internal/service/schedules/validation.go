package schedules

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// validateStruct проверяет теги validate у запроса
func (s *Service) validateStruct(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("%w: field %s failed on %q", ErrInvalidFormat, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

// parseRecurrence разбирает тип повторения, даты и дни недели
func parseRecurrence(recurrenceType string, dates, weekdays []string) (domain.Recurrence, error) {
	recurrence, err := domain.ParseRecurrence(recurrenceType, dates, weekdays)
	if err != nil {
		return domain.Recurrence{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return recurrence, nil
}

// parseTimeOfDay разбирает время HH:MM:SS
func parseTimeOfDay(field, value string) (types.TimeOfDay, error) {
	t, err := types.ParseTimeOfDay(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, field, err)
	}
	return t, nil
}

// parseSlotDuration разбирает длительность слота, она должна быть положительной
func parseSlotDuration(value string) (time.Duration, error) {
	d, err := types.ParseClockDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: slotDuration: %v", ErrInvalidFormat, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: slotDuration must be positive", ErrInvalidFormat)
	}
	return d, nil
}

// parseBreaks разбирает перерывы, сохраняя порядок
func parseBreaks(inputs []models.BreakInput) ([]domain.Break, error) {
	breaks := make([]domain.Break, 0, len(inputs))
	for i, in := range inputs {
		start, err := parseTimeOfDay(fmt.Sprintf("breaks[%d].start", i), in.Start)
		if err != nil {
			return nil, err
		}
		duration, err := types.ParseClockDuration(in.Duration)
		if err != nil {
			return nil, fmt.Errorf("%w: breaks[%d].duration: %v", ErrInvalidFormat, i, err)
		}
		breaks = append(breaks, domain.Break{Name: in.Name, Start: start, Duration: duration})
	}
	return breaks, nil
}

// checkScheduleRules проверяет бизнес-правила смены в порядке:
// начало раньше конца, слот помещается в смену, перерывы не раньше начала смены.
// Конец перерыва относительно конца смены не проверяется: генерация слотов это учитывает.
func checkScheduleRules(s *domain.Schedule) error {
	if !s.ShiftStart.Before(s.ShiftEnd) {
		return fmt.Errorf("%w: %s >= %s", ErrShiftStartAfterEnd, s.ShiftStart, s.ShiftEnd)
	}

	if s.SlotDuration > s.ShiftLength() {
		return fmt.Errorf("%w: slot %s, shift %s", ErrDurationExceedsShift,
			types.FormatClockDuration(s.SlotDuration), types.FormatClockDuration(s.ShiftLength()))
	}

	for _, b := range s.Breaks {
		if b.Start.Before(s.ShiftStart) {
			return fmt.Errorf("%w: break %q at %s, shift starts at %s", ErrBreakBeforeShiftStart, b.Name, b.Start, s.ShiftStart)
		}
	}

	return nil
}

// nextPriority возвращает приоритет после максимального или 1 для пустого списка
func nextPriority(schedules []*domain.Schedule) int {
	maxPriority := 0
	for _, s := range schedules {
		if s.Priority > maxPriority {
			maxPriority = s.Priority
		}
	}
	if maxPriority == 0 {
		return domain.DefaultPriority
	}
	return maxPriority + 1
}

// priorityTaken проверяет, занят ли приоритет среди расписаний владельца
func priorityTaken(schedules []*domain.Schedule, priority int) bool {
	for _, s := range schedules {
		if s.Priority == priority {
			return true
		}
	}
	return false
}
