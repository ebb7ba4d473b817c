package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	// DateLayout is the wire layout of a calendar date (MM/DD/YYYY).
	DateLayout = "01/02/2006"
	// isoDateLayout is how dates are exchanged with PostgreSQL.
	isoDateLayout = "2006-01-02"
)

// Date is a calendar day without time of day or zone.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate builds a Date, normalising overflowing components the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses a strict MM/DD/YYYY value.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: expected MM/DD/YYYY, got %q", ErrInvalidFormat, s)
	}
	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Components returns year, month and day.
func (d Date) Components() (int, time.Month, int) {
	return d.year, d.month, d.day
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Start(time.UTC).Weekday()
}

// Start returns midnight of d in loc.
func (d Date) Start(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.year, d.month, d.day+n)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", int(d.month), d.day, d.year)
}

// ISO returns d as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MarshalText implements encoding.TextMarshaler. The zero Date encodes as an empty string.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for DATE columns.
func (d Date) Value() (driver.Value, error) {
	return d.ISO(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanISO(string(v))
	case string:
		return d.scanISO(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into Date", ErrInvalidFormat, src)
	}
}

func (d *Date) scanISO(s string) error {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidFormat, s)
	}
	*d = DateOf(t)
	return nil
}

// ParseISODate parses a YYYY-MM-DD value as stored by PostgreSQL.
func ParseISODate(s string) (Date, error) {
	var d Date
	if err := d.scanISO(s); err != nil {
		return Date{}, err
	}
	return d, nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
