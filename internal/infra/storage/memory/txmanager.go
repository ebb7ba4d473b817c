package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type txKey struct{}

// TxManager runs blocks against a Store under its writer lock.
// Readers outside the block wait for it to finish, and a block returning an error
// leaves the store as it was before the block started.
type TxManager struct {
	store *Store
}

// NewTxManager creates a transaction manager for store.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.DoSerializable(ctx, fn)
}

// DoSerializable joins an outer block of the same store instead of nesting.
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.store.inTx(ctx) {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	saved := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, m.store)); err != nil {
		m.store.restore(saved)
		return err
	}
	return nil
}

// inTx reports whether ctx belongs to a block that already holds s.mu.
func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// rlock takes the read lock unless ctx already holds the writer lock. Use as defer s.rlock(ctx)().
func (s *Store) rlock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// lock takes the writer lock unless ctx already holds it.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	companies    map[uuid.UUID]*domain.Company
	users        map[uuid.UUID]*domain.User
	memberships  map[domain.Owner]struct{}
	schedules    map[uuid.UUID]*domain.Schedule
	appointments map[uuid.UUID]*domain.Appointment
}

// snapshot deep-copies every map; writers mutate stored entities in place.
func (s *Store) snapshot() snapshot {
	saved := snapshot{
		companies:    make(map[uuid.UUID]*domain.Company, len(s.companies)),
		users:        make(map[uuid.UUID]*domain.User, len(s.users)),
		memberships:  make(map[domain.Owner]struct{}, len(s.memberships)),
		schedules:    make(map[uuid.UUID]*domain.Schedule, len(s.schedules)),
		appointments: make(map[uuid.UUID]*domain.Appointment, len(s.appointments)),
	}
	for id, c := range s.companies {
		saved.companies[id] = c.Clone()
	}
	for id, u := range s.users {
		cp := *u
		saved.users[id] = &cp
	}
	for owner := range s.memberships {
		saved.memberships[owner] = struct{}{}
	}
	for id, schedule := range s.schedules {
		saved.schedules[id] = schedule.Clone()
	}
	for id, appointment := range s.appointments {
		saved.appointments[id] = appointment.Clone()
	}
	return saved
}

func (s *Store) restore(saved snapshot) {
	s.companies = saved.companies
	s.users = saved.users
	s.memberships = saved.memberships
	s.schedules = saved.schedules
	s.appointments = saved.appointments
}
