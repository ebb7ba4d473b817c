package types

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeOfDayLayout is the wire layout of a wall-clock time.
const TimeOfDayLayout = "15:04:05"

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})$`)

// TimeOfDay is a wall-clock time without a date, stored as seconds since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from its components.
// Components are not range checked; use ParseTimeOfDay for untrusted input.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay parses a strict HH:MM:SS value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, sec, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	if h > 23 {
		return 0, fmt.Errorf("%w: hour out of range in %q", ErrInvalidFormat, s)
	}
	return NewTimeOfDay(h, m, sec), nil
}

// MustParseTimeOfDay is like ParseTimeOfDay but panics on error.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 3600 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }

// Second returns the second component.
func (t TimeOfDay) Second() int { return int(t) % 60 }

// SinceMidnight returns the offset from the start of the day.
func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t) * time.Second
}

// On returns the instant this wall-clock time denotes on date in loc.
func (t TimeOfDay) On(date Date, loc *time.Location) time.Time {
	y, m, d := date.Components()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// After reports whether t is later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer for TIME columns.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner. lib/pq hands TIME columns back as time.Time on 0000-01-01.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeOfDay(v.Hour(), v.Minute(), v.Second())
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeOfDay", ErrInvalidFormat, src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	// Drop fractional seconds if the column carries them.
	if len(s) > 8 && s[8] == '.' {
		s = s[:8]
	}
	return t.UnmarshalText([]byte(s))
}

func splitClock(s string) (int, int, int, error) {
	match := clockPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, 0, 0, fmt.Errorf("%w: expected HH:MM:SS, got %q", ErrInvalidFormat, s)
	}
	h, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	sec, _ := strconv.Atoi(match[3])
	if m > 59 || sec > 59 {
		return 0, 0, 0, fmt.Errorf("%w: minutes or seconds out of range in %q", ErrInvalidFormat, s)
	}
	return h, m, sec, nil
}
