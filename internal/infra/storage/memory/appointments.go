package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
)

// Appointments exposes the appointment half of the store.
// Schedule and appointment contracts share method names (GetByID, Create, Delete),
// so each gets its own view over the same Store.
func (s *Store) Appointments() *AppointmentStore {
	return &AppointmentStore{store: s}
}

// AppointmentStore is the appointment repository view of a Store.
type AppointmentStore struct {
	store *Store
}

func (a *AppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	defer a.store.rlock(ctx)()

	appointment, ok := a.store.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appointment.Clone(), nil
}

// GetByOwnerAndTimeRange returns owner's appointments with from <= time < to, ordered by time.
func (a *AppointmentStore) GetByOwnerAndTimeRange(ctx context.Context, owner domain.Owner, from, to time.Time) ([]*domain.Appointment, error) {
	defer a.store.rlock(ctx)()

	result := make([]*domain.Appointment, 0)
	for _, appointment := range a.store.appointments {
		if appointment.Owner != owner || appointment.Time.Before(from) || !appointment.Time.Before(to) {
			continue
		}
		result = append(result, appointment.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Time.Before(result[j].Time)
	})
	return result, nil
}

func (a *AppointmentStore) GetByExactTime(ctx context.Context, owner domain.Owner, at time.Time) (*domain.Appointment, error) {
	defer a.store.rlock(ctx)()

	if appointment := a.store.findAt(owner, at); appointment != nil {
		return appointment.Clone(), nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (a *AppointmentStore) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	defer a.store.lock(ctx)()

	if a.store.findAt(appointment.Owner, appointment.Time) != nil {
		return nil, appointmentRepo.ErrTimeTaken
	}

	created := appointment.Clone()
	created.ID = uuid.New()
	created.CreatedAt = a.store.now()
	a.store.appointments[created.ID] = created
	return created.Clone(), nil
}

// Delete removes the appointment and returns what was removed.
func (a *AppointmentStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	defer a.store.lock(ctx)()

	appointment, ok := a.store.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	delete(a.store.appointments, id)
	return appointment.Clone(), nil
}

func (s *Store) findAt(owner domain.Owner, at time.Time) *domain.Appointment {
	for _, appointment := range s.appointments {
		if appointment.Owner == owner && appointment.Time.Equal(at) {
			return appointment
		}
	}
	return nil
}
