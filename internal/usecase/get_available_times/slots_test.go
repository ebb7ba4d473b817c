package get_available_times

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	slotDate  = types.MustParseDate("12/10/2024")
	longAgo   = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	workShift = EffectiveSchedule{
		ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
		SlotDuration: time.Hour,
	}
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 12, 10, hour, minute, 0, 0, time.UTC)
}

func lunch(start string, d time.Duration) domain.Break {
	return domain.Break{Name: "break", Start: types.MustParseTimeOfDay(start), Duration: d}
}

func starts(slots []domain.AvailabilitySlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.Format("15:04"))
	}
	return out
}

func TestGenerateSlotsFullShift(t *testing.T) {
	eff := workShift

	slots := GenerateSlots(&eff, slotDate, time.UTC, nil, longAgo)

	assert.Len(t, slots, 9)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(9, 0), slots[0].End)
	assert.Equal(t, at(16, 0), slots[8].Start)
	assert.Equal(t, at(17, 0), slots[8].End)
}

func TestGenerateSlotsSingleSlotShift(t *testing.T) {
	eff := workShift
	eff.ShiftEnd = types.MustParseTimeOfDay("09:00:00")

	slots := GenerateSlots(&eff, slotDate, time.UTC, nil, longAgo)

	assert.Equal(t, []domain.AvailabilitySlot{{Start: at(8, 0), End: at(9, 0)}}, slots)
}

func TestGenerateSlotsDisjointBreaks(t *testing.T) {
	eff := workShift
	eff.Breaks = []domain.Break{lunch("12:00:00", time.Hour), lunch("13:30:00", 30*time.Minute)}

	slots := GenerateSlots(&eff, slotDate, time.UTC, nil, longAgo)

	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}, starts(slots))
}

func TestGenerateSlotsOverlappingBreaks(t *testing.T) {
	eff := workShift
	eff.Breaks = []domain.Break{lunch("12:00:00", time.Hour), lunch("12:30:00", time.Hour)}

	slots := GenerateSlots(&eff, slotDate, time.UTC, nil, longAgo)

	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00", "13:30", "14:30", "15:30"}, starts(slots))
}

func TestGenerateSlotsBreakTouchingSlotIsNotOverlap(t *testing.T) {
	eff := workShift
	eff.Breaks = []domain.Break{lunch("09:00:00", 0)}

	slots := GenerateSlots(&eff, slotDate, time.UTC, nil, longAgo)

	assert.Len(t, slots, 9)
}

func TestGenerateSlotsBreakBeyondShiftEnd(t *testing.T) {
	eff := workShift
	eff.Breaks = []domain.Break{lunch("16:30:00", time.Hour)}

	slots := GenerateSlots(&eff, slotDate, time.UTC, nil, longAgo)

	assert.Len(t, slots, 8)
	assert.Equal(t, at(15, 0), slots[7].Start)
}

func TestGenerateSlotsSkipsPastAndBooked(t *testing.T) {
	eff := workShift
	booked := []*domain.Appointment{{Time: at(14, 0)}}

	slots := GenerateSlots(&eff, slotDate, time.UTC, booked, at(11, 30))

	assert.Equal(t, []string{"12:00", "13:00", "15:00", "16:00"}, starts(slots))
}

func TestGenerateSlotsSlotStartingNowIsNotBookable(t *testing.T) {
	eff := workShift

	slots := GenerateSlots(&eff, slotDate, time.UTC, nil, at(16, 0))

	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestGenerateSlotsUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	eff := workShift

	slots := GenerateSlots(&eff, slotDate, loc, nil, longAgo)

	assert.Equal(t, time.Date(2024, 12, 10, 5, 0, 0, 0, time.UTC), slots[0].Start.UTC())
}

func TestGenerateSlotsZeroDurationYieldsNothing(t *testing.T) {
	eff := workShift
	eff.SlotDuration = 0

	assert.Empty(t, GenerateSlots(&eff, slotDate, time.UTC, nil, longAgo))
}
