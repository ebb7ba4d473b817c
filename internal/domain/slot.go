package domain

import "time"

// AvailabilitySlot is a bookable half-open interval [Start, End)
type AvailabilitySlot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the slot length
func (s AvailabilitySlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether the half-open intervals [s.Start, s.End) and [start, end) intersect.
// Touching intervals do not overlap.
func (s AvailabilitySlot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}
