package types

import "errors"

// ErrInvalidFormat is returned when a time, date, duration or weekday token cannot be parsed.
var ErrInvalidFormat = errors.New("types: invalid format")
