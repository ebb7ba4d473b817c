package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company owns schedules through its users and defines the cancellation policy
type Company struct {
	ID                    uuid.UUID
	Name                  string
	CancellationGraceTime time.Duration
	ServiceRules          *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Clone returns a copy
func (c *Company) Clone() *Company {
	if c == nil {
		return nil
	}
	cp := *c
	if c.ServiceRules != nil {
		rules := *c.ServiceRules
		cp.ServiceRules = &rules
	}
	return &cp
}

// User is either a company member owning schedules or a client identified by phone
type User struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	CreatedAt time.Time
}
