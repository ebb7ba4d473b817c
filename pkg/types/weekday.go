package types

import (
	"fmt"
	"strings"
	"time"
)

var weekdayAbbrevs = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekday parses a three letter weekday abbreviation (Mon..Sun), case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayAbbrevs[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidFormat, s)
	}
	return wd, nil
}

// WeekdayAbbrev returns the three letter abbreviation of wd.
func WeekdayAbbrev(wd time.Weekday) string {
	return wd.String()[:3]
}
