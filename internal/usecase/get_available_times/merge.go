package get_available_times

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// EffectiveSchedule is what a set of applicable schedules resolves to on one date.
type EffectiveSchedule struct {
	ShiftStart   types.TimeOfDay
	ShiftEnd     types.TimeOfDay
	SlotDuration time.Duration
	Breaks       []domain.Break
}

// MergeSchedules resolves the schedules that apply on date into one EffectiveSchedule.
// schedules must be ordered by ascending priority. Shift bounds and slot duration come
// from the first applicable schedule; breaks of all applicable schedules are concatenated
// in priority order.
func MergeSchedules(schedules []*domain.Schedule, date types.Date) (*EffectiveSchedule, error) {
	var effective *EffectiveSchedule

	for _, schedule := range schedules {
		if !schedule.AppliesTo(date) {
			continue
		}

		if effective == nil {
			effective = &EffectiveSchedule{
				ShiftStart:   schedule.ShiftStart,
				ShiftEnd:     schedule.ShiftEnd,
				SlotDuration: schedule.SlotDuration,
				Breaks:       make([]domain.Break, 0, len(schedule.Breaks)),
			}
		}
		effective.Breaks = append(effective.Breaks, schedule.Breaks...)
	}

	if effective == nil {
		return nil, ErrNoSchedulesConfigured
	}
	return effective, nil
}
