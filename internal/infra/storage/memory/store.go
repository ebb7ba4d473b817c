// Package memory keeps schedules, appointments and owners in process memory.
// It implements the same contracts as the PostgreSQL repositories and returns their sentinel errors.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Store is a concurrency-safe in-memory backend. The zero value is not usable; call New.
type Store struct {
	mu sync.RWMutex

	companies    map[uuid.UUID]*domain.Company
	users        map[uuid.UUID]*domain.User
	memberships  map[domain.Owner]struct{}
	schedules    map[uuid.UUID]*domain.Schedule
	appointments map[uuid.UUID]*domain.Appointment

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		companies:    make(map[uuid.UUID]*domain.Company),
		users:        make(map[uuid.UUID]*domain.User),
		memberships:  make(map[domain.Owner]struct{}),
		schedules:    make(map[uuid.UUID]*domain.Schedule),
		appointments: make(map[uuid.UUID]*domain.Appointment),
		now:          time.Now,
	}
}

// AddCompany registers a company. A zero ID is replaced by a fresh one.
func (s *Store) AddCompany(company *domain.Company) *domain.Company {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := company.Clone()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
		c.UpdatedAt = c.CreatedAt
	}
	s.companies[c.ID] = c
	return c.Clone()
}

// AddUser registers a user. A zero ID is replaced by a fresh one.
func (s *Store) AddUser(user *domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = &u
	cp := u
	return &cp
}

// AddMembership links a user to a company, making the pair a schedule owner.
func (s *Store) AddMembership(owner domain.Owner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships[owner] = struct{}{}
}
