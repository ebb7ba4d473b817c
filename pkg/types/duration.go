package types

import (
	"fmt"
	"time"
)

// ParseClockDuration parses a duration written as HH:MM:SS. Hours may go up to 99.
func ParseClockDuration(s string) (time.Duration, error) {
	h, m, sec, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatClockDuration renders d as HH:MM:SS, truncating to whole seconds.
func FormatClockDuration(d time.Duration) string {
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
