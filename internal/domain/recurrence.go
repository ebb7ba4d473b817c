package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ErrInvalidRecurrence is returned when recurrence tokens cannot be turned into a Recurrence.
var ErrInvalidRecurrence = errors.New("domain: invalid recurrence")

// RecurrenceType tells which calendar dates a schedule applies to.
type RecurrenceType string

const (
	// RecurrenceOnDates applies to an explicit list of dates.
	RecurrenceOnDates RecurrenceType = "ON_DATES"
	// RecurrenceDateRange applies to every date in an inclusive range, optionally only on some weekdays.
	RecurrenceDateRange RecurrenceType = "DATE_RANGE"
)

// IsValid reports whether t is a known recurrence type.
func (t RecurrenceType) IsValid() bool {
	return t == RecurrenceOnDates || t == RecurrenceDateRange
}

// Recurrence is a tagged variant: Dates is used by ON_DATES,
// RangeStart, RangeEnd and Weekdays by DATE_RANGE.
type Recurrence struct {
	Type       RecurrenceType `json:"type"`
	Dates      []types.Date   `json:"dates,omitempty"`
	RangeStart types.Date     `json:"rangeStart"`
	RangeEnd   types.Date     `json:"rangeEnd"`
	Weekdays   []time.Weekday `json:"weekdays,omitempty"`
}

// NewOnDates builds an ON_DATES recurrence.
func NewOnDates(dates ...types.Date) Recurrence {
	return Recurrence{Type: RecurrenceOnDates, Dates: dates}
}

// NewDateRange builds a DATE_RANGE recurrence. No weekdays means every day of the range.
func NewDateRange(start, end types.Date, weekdays ...time.Weekday) Recurrence {
	return Recurrence{Type: RecurrenceDateRange, RangeStart: start, RangeEnd: end, Weekdays: weekdays}
}

// ParseRecurrence builds a Recurrence from wire tokens.
// ON_DATES takes one or more MM/DD/YYYY dates and no weekdays.
// DATE_RANGE takes exactly two dates (start, end) and any number of Mon..Sun weekdays.
func ParseRecurrence(recurrenceType string, dates []string, weekdays []string) (Recurrence, error) {
	t := RecurrenceType(recurrenceType)
	if !t.IsValid() {
		return Recurrence{}, fmt.Errorf("%w: unknown type %q", ErrInvalidRecurrence, recurrenceType)
	}

	parsedDates := make([]types.Date, 0, len(dates))
	for _, raw := range dates {
		d, err := types.ParseDate(raw)
		if err != nil {
			return Recurrence{}, fmt.Errorf("%w: %w", ErrInvalidRecurrence, err)
		}
		parsedDates = append(parsedDates, d)
	}

	parsedWeekdays := make([]time.Weekday, 0, len(weekdays))
	for _, raw := range weekdays {
		wd, err := types.ParseWeekday(raw)
		if err != nil {
			return Recurrence{}, fmt.Errorf("%w: %w", ErrInvalidRecurrence, err)
		}
		if !slices.Contains(parsedWeekdays, wd) {
			parsedWeekdays = append(parsedWeekdays, wd)
		}
	}

	var r Recurrence
	switch t {
	case RecurrenceOnDates:
		if len(parsedWeekdays) > 0 {
			return Recurrence{}, fmt.Errorf("%w: weekdays are only allowed for %s", ErrInvalidRecurrence, RecurrenceDateRange)
		}
		r = NewOnDates(parsedDates...)
	case RecurrenceDateRange:
		if len(parsedDates) != 2 {
			return Recurrence{}, fmt.Errorf("%w: %s needs exactly a start and an end date, got %d dates",
				ErrInvalidRecurrence, RecurrenceDateRange, len(parsedDates))
		}
		r = NewDateRange(parsedDates[0], parsedDates[1], parsedWeekdays...)
	}

	if err := r.Validate(); err != nil {
		return Recurrence{}, err
	}
	return r, nil
}

// Validate checks the structural invariants of r.
func (r Recurrence) Validate() error {
	switch r.Type {
	case RecurrenceOnDates:
		if len(r.Dates) == 0 {
			return fmt.Errorf("%w: %s needs at least one date", ErrInvalidRecurrence, RecurrenceOnDates)
		}
	case RecurrenceDateRange:
		if r.RangeStart.IsZero() || r.RangeEnd.IsZero() {
			return fmt.Errorf("%w: %s needs start and end dates", ErrInvalidRecurrence, RecurrenceDateRange)
		}
		if r.RangeStart.After(r.RangeEnd) {
			return fmt.Errorf("%w: range start %s is after end %s", ErrInvalidRecurrence, r.RangeStart, r.RangeEnd)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRecurrence, r.Type)
	}
	return nil
}

// Applies reports whether the recurrence covers date.
func (r Recurrence) Applies(date types.Date) bool {
	switch r.Type {
	case RecurrenceOnDates:
		return slices.Contains(r.Dates, date)
	case RecurrenceDateRange:
		if date.Before(r.RangeStart) || date.After(r.RangeEnd) {
			return false
		}
		return len(r.Weekdays) == 0 || slices.Contains(r.Weekdays, date.Weekday())
	default:
		return false
	}
}

// DateTokens returns the dates as MM/DD/YYYY strings in wire order.
func (r Recurrence) DateTokens() []string {
	if r.Type == RecurrenceDateRange {
		return []string{r.RangeStart.String(), r.RangeEnd.String()}
	}
	out := make([]string, 0, len(r.Dates))
	for _, d := range r.Dates {
		out = append(out, d.String())
	}
	return out
}

// WeekdayTokens returns the weekdays as Mon..Sun abbreviations.
func (r Recurrence) WeekdayTokens() []string {
	out := make([]string, 0, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		out = append(out, types.WeekdayAbbrev(wd))
	}
	return out
}

func (r Recurrence) clone() Recurrence {
	r.Dates = slices.Clone(r.Dates)
	r.Weekdays = slices.Clone(r.Weekdays)
	return r
}
