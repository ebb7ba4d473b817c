package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	ownerRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/owner"
)

// Exists reports whether the company exists and the user is its member.
func (s *Store) Exists(ctx context.Context, owner domain.Owner) (bool, error) {
	defer s.rlock(ctx)()

	if _, ok := s.companies[owner.CompanyID]; !ok {
		return false, nil
	}
	if _, ok := s.users[owner.UserID]; !ok {
		return false, nil
	}
	_, ok := s.memberships[owner]
	return ok, nil
}

func (s *Store) GetCompany(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	defer s.rlock(ctx)()

	company, ok := s.companies[id]
	if !ok {
		return nil, ownerRepo.ErrCompanyNotFound
	}
	return company.Clone(), nil
}

func (s *Store) UpdateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	defer s.lock(ctx)()

	current, ok := s.companies[company.ID]
	if !ok {
		return nil, ownerRepo.ErrCompanyNotFound
	}

	updated := company.Clone()
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()
	s.companies[updated.ID] = updated
	return updated.Clone(), nil
}

func (s *Store) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	defer s.rlock(ctx)()

	for _, user := range s.users {
		if user.Phone == phone {
			u := *user
			return &u, nil
		}
	}
	return nil, ownerRepo.ErrUserNotFound
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	defer s.lock(ctx)()

	for _, existing := range s.users {
		if existing.Phone == user.Phone {
			return nil, ownerRepo.ErrPhoneTaken
		}
	}

	created := *user
	created.ID = uuid.New()
	created.CreatedAt = s.now()
	s.users[created.ID] = &created

	out := created
	return &out, nil
}
