package get_available_times

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// GenerateSlots walks the shift of effective on date and returns bookable slots.
//
// The cursor starts at shift start. A candidate [cursor, cursor+duration) that overlaps a
// break moves the cursor to the end of the first such break. Otherwise the candidate is
// kept if it fits before shift end, does not start at an already booked time and starts
// strictly after now; the cursor then moves to the candidate end. The walk stops at the
// first candidate that does not fit.
func GenerateSlots(
	effective *EffectiveSchedule,
	date types.Date,
	loc *time.Location,
	appointments []*domain.Appointment,
	now time.Time,
) []domain.AvailabilitySlot {
	slots := make([]domain.AvailabilitySlot, 0)
	if effective == nil || effective.SlotDuration <= 0 {
		return slots
	}

	booked := make(map[int64]struct{}, len(appointments))
	for _, appointment := range appointments {
		booked[appointment.Time.UnixNano()] = struct{}{}
	}

	shiftEnd := effective.ShiftEnd.On(date, loc)
	cursor := effective.ShiftStart.On(date, loc)

	for {
		candidate := domain.AvailabilitySlot{Start: cursor, End: cursor.Add(effective.SlotDuration)}

		if breakEnd, ok := firstOverlappingBreak(candidate, effective.Breaks, date, loc); ok {
			cursor = breakEnd
			continue
		}

		if candidate.End.After(shiftEnd) {
			break
		}

		_, taken := booked[candidate.Start.UnixNano()]
		if !taken && candidate.Start.After(now) {
			slots = append(slots, candidate)
		}
		cursor = candidate.End
	}

	return slots
}

// firstOverlappingBreak returns the end of the first break, in list order, that overlaps candidate.
// A break that overlaps always ends after candidate.Start, so the walk keeps moving forward.
func firstOverlappingBreak(
	candidate domain.AvailabilitySlot,
	breaks []domain.Break,
	date types.Date,
	loc *time.Location,
) (time.Time, bool) {
	for _, b := range breaks {
		start, end := b.Interval(date, loc)
		if candidate.Overlaps(start, end) {
			return end, true
		}
	}
	return time.Time{}, false
}
