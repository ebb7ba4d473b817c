package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a booked slot start on an owner's calendar.
// It is created by the booking guard and removed on cancellation, never updated.
// The cancellation policy is the grace time of the owning company.
type Appointment struct {
	ID           uuid.UUID
	Title        string
	Time         time.Time
	Owner        Owner
	ClientUserID uuid.UUID
	CreatedAt    time.Time
}

// CancellationDeadline returns the last instant before which the appointment may be cancelled
func (a *Appointment) CancellationDeadline(grace time.Duration) time.Time {
	return a.Time.Add(-grace)
}

// CanBeCancelled returns true if now is strictly before the cancellation deadline
func (a *Appointment) CanBeCancelled(now time.Time, grace time.Duration) bool {
	return now.Before(a.CancellationDeadline(grace))
}

// Clone returns a copy
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
