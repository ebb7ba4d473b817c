package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Break is a named interval inside a shift during which nothing can be booked.
type Break struct {
	Name     string          `json:"name"`
	Start    types.TimeOfDay `json:"start"`
	Duration time.Duration   `json:"duration"`
}

// Interval returns the instants the break covers on date.
func (b Break) Interval(date types.Date, loc *time.Location) (time.Time, time.Time) {
	start := b.Start.On(date, loc)
	return start, start.Add(b.Duration)
}

// Schedule is a recurring working pattern of an owner.
// Among an owner's active schedules priorities are unique; lower value wins.
type Schedule struct {
	ID           uuid.UUID       `json:"id"`
	Owner        Owner           `json:"owner"`
	Name         string          `json:"name"`
	Priority     int             `json:"priority"`
	Recurrence   Recurrence      `json:"recurrence"`
	ShiftStart   types.TimeOfDay `json:"shiftStart"`
	ShiftEnd     types.TimeOfDay `json:"shiftEnd"`
	SlotDuration time.Duration   `json:"slotDuration"`
	Breaks       []Break         `json:"breaks"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsActive returns true if the schedule has not been deleted
func (s *Schedule) IsActive() bool {
	return s.DeletedAt == nil
}

// ShiftLength returns the time between shift start and shift end
func (s *Schedule) ShiftLength() time.Duration {
	return s.ShiftEnd.SinceMidnight() - s.ShiftStart.SinceMidnight()
}

// AppliesTo reports whether the schedule is active and its recurrence covers date
func (s *Schedule) AppliesTo(date types.Date) bool {
	return s.IsActive() && s.Recurrence.Applies(date)
}

// Clone returns a deep copy
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	c := *s
	c.Recurrence = s.Recurrence.clone()
	c.Breaks = slices.Clone(s.Breaks)
	if s.DeletedAt != nil {
		deletedAt := *s.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}
