package domain

import "time"

// Default values
const (
	DefaultCancellationGraceTime = time.Hour
	DefaultPriority              = 1
)

// Business validation constants
const (
	MaxServiceRulesLength = 5000
)
