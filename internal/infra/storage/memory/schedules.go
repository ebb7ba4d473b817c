package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
)

func (s *Store) GetByOwnerOrderedByPriority(ctx context.Context, owner domain.Owner) ([]*domain.Schedule, error) {
	defer s.rlock(ctx)()

	result := make([]*domain.Schedule, 0)
	for _, schedule := range s.schedules {
		if schedule.Owner == owner && schedule.IsActive() {
			result = append(result, schedule.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	defer s.rlock(ctx)()

	schedule, ok := s.schedules[id]
	if !ok || !schedule.IsActive() {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return schedule.Clone(), nil
}

func (s *Store) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	defer s.lock(ctx)()

	if s.priorityTaken(schedule.Owner, schedule.Priority, uuid.Nil) {
		return nil, scheduleRepo.ErrPriorityConflict
	}

	created := schedule.Clone()
	created.ID = uuid.New()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	created.DeletedAt = nil
	s.schedules[created.ID] = created

	return created.Clone(), nil
}

func (s *Store) Update(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	defer s.lock(ctx)()

	current, ok := s.schedules[schedule.ID]
	if !ok || !current.IsActive() {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	if s.priorityTaken(schedule.Owner, schedule.Priority, schedule.ID) {
		return nil, scheduleRepo.ErrPriorityConflict
	}

	updated := schedule.Clone()
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()
	updated.DeletedAt = nil
	s.schedules[updated.ID] = updated

	return updated.Clone(), nil
}

// BatchIncrementPriorities shifts every active schedule of owner with priority >= threshold
// one position down, except excludeID.
func (s *Store) BatchIncrementPriorities(ctx context.Context, owner domain.Owner, threshold int, excludeID uuid.UUID) (int64, error) {
	defer s.lock(ctx)()

	var affected int64
	now := s.now()
	for id, schedule := range s.schedules {
		if id == excludeID || schedule.Owner != owner || !schedule.IsActive() || schedule.Priority < threshold {
			continue
		}
		schedule.Priority++
		schedule.UpdatedAt = now
		affected++
	}
	return affected, nil
}

// Delete marks the schedule deleted and returns it as it was before deletion.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	defer s.lock(ctx)()

	schedule, ok := s.schedules[id]
	if !ok || !schedule.IsActive() {
		return nil, scheduleRepo.ErrScheduleNotFound
	}

	snapshot := schedule.Clone()
	deletedAt := s.now()
	schedule.DeletedAt = &deletedAt
	return snapshot, nil
}

func (s *Store) priorityTaken(owner domain.Owner, priority int, exclude uuid.UUID) bool {
	for id, schedule := range s.schedules {
		if id != exclude && schedule.Owner == owner && schedule.IsActive() && schedule.Priority == priority {
			return true
		}
	}
	return false
}
