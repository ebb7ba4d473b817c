package get_available_times

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func TestMergeSchedulesTakesShiftFromFirstAndConcatenatesBreaks(t *testing.T) {
	date := types.MustParseDate("12/10/2024")
	deletedAt := time.Now()

	schedules := []*domain.Schedule{
		{
			Priority:     1,
			Recurrence:   domain.NewOnDates(types.MustParseDate("12/11/2024")),
			ShiftStart:   types.MustParseTimeOfDay("06:00:00"),
			ShiftEnd:     types.MustParseTimeOfDay("07:00:00"),
			SlotDuration: time.Minute,
		},
		{
			Priority:     2,
			Recurrence:   domain.NewOnDates(date),
			ShiftStart:   types.MustParseTimeOfDay("10:00:00"),
			ShiftEnd:     types.MustParseTimeOfDay("14:00:00"),
			SlotDuration: 30 * time.Minute,
			Breaks:       []domain.Break{lunch("11:00:00", time.Hour)},
		},
		{
			Priority:     3,
			Recurrence:   domain.NewDateRange(types.MustParseDate("12/01/2024"), types.MustParseDate("12/31/2024")),
			ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
			ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
			SlotDuration: time.Hour,
			Breaks:       []domain.Break{lunch("13:00:00", time.Hour)},
		},
		{
			Priority:   4,
			Recurrence: domain.NewOnDates(date),
			Breaks:     []domain.Break{lunch("15:00:00", time.Hour)},
			DeletedAt:  &deletedAt,
		},
	}

	eff, err := MergeSchedules(schedules, date)
	require.NoError(t, err)

	assert.Equal(t, types.MustParseTimeOfDay("10:00:00"), eff.ShiftStart)
	assert.Equal(t, types.MustParseTimeOfDay("14:00:00"), eff.ShiftEnd)
	assert.Equal(t, 30*time.Minute, eff.SlotDuration)
	assert.Equal(t, []domain.Break{lunch("11:00:00", time.Hour), lunch("13:00:00", time.Hour)}, eff.Breaks)
}

func TestMergeSchedulesNothingApplies(t *testing.T) {
	schedules := []*domain.Schedule{
		{Priority: 1, Recurrence: domain.NewOnDates(types.MustParseDate("12/11/2024"))},
	}

	_, err := MergeSchedules(schedules, types.MustParseDate("12/10/2024"))
	assert.ErrorIs(t, err, ErrNoSchedulesConfigured)

	_, err = MergeSchedules(nil, types.MustParseDate("12/10/2024"))
	assert.ErrorIs(t, err, ErrNoSchedulesConfigured)
}
