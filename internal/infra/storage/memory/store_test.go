package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	ownerRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/owner"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
)

func seedOwner(t *testing.T, store *Store) domain.Owner {
	t.Helper()
	company := store.AddCompany(&domain.Company{Name: "Barbershop", CancellationGraceTime: time.Hour})
	user := store.AddUser(&domain.User{Name: "Anna", Phone: "+79990000001"})
	owner := domain.Owner{CompanyID: company.ID, UserID: user.ID}
	store.AddMembership(owner)
	return owner
}

func TestExists(t *testing.T) {
	store := New()
	owner := seedOwner(t, store)
	ctx := context.Background()

	ok, err := store.Exists(ctx, owner)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, domain.Owner{CompanyID: owner.CompanyID, UserID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSchedulesOrderingAndPriorityConflict(t *testing.T) {
	store := New()
	owner := seedOwner(t, store)
	ctx := context.Background()

	second, err := store.Create(ctx, &domain.Schedule{Owner: owner, Name: "second", Priority: 2})
	require.NoError(t, err)
	_, err = store.Create(ctx, &domain.Schedule{Owner: owner, Name: "first", Priority: 1})
	require.NoError(t, err)

	_, err = store.Create(ctx, &domain.Schedule{Owner: owner, Name: "dup", Priority: 2})
	assert.ErrorIs(t, err, scheduleRepo.ErrPriorityConflict)

	list, err := store.GetByOwnerOrderedByPriority(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Name)
	assert.Equal(t, "second", list[1].Name)

	deleted, err := store.Delete(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsActive(), "snapshot is taken before deletion")

	_, err = store.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, scheduleRepo.ErrScheduleNotFound)

	_, err = store.Create(ctx, &domain.Schedule{Owner: owner, Name: "reuse", Priority: 2})
	assert.NoError(t, err, "deleted schedules release their priority")
}

func TestBatchIncrementPriorities(t *testing.T) {
	store := New()
	owner := seedOwner(t, store)
	ctx := context.Background()

	a, _ := store.Create(ctx, &domain.Schedule{Owner: owner, Priority: 1})
	b, _ := store.Create(ctx, &domain.Schedule{Owner: owner, Priority: 2})
	c, _ := store.Create(ctx, &domain.Schedule{Owner: owner, Priority: 3})

	affected, err := store.BatchIncrementPriorities(ctx, owner, 2, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	gotA, _ := store.GetByID(ctx, a.ID)
	gotB, _ := store.GetByID(ctx, b.ID)
	gotC, _ := store.GetByID(ctx, c.ID)
	assert.Equal(t, 1, gotA.Priority)
	assert.Equal(t, 3, gotB.Priority)
	assert.Equal(t, 3, gotC.Priority, "excluded schedule keeps its priority")
}

func TestAppointments(t *testing.T) {
	store := New()
	owner := seedOwner(t, store)
	appointments := store.Appointments()
	ctx := context.Background()
	at := time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)

	created, err := appointments.Create(ctx, &domain.Appointment{Owner: owner, Time: at, Title: "Haircut"})
	require.NoError(t, err)

	_, err = appointments.Create(ctx, &domain.Appointment{Owner: owner, Time: at, Title: "Again"})
	assert.ErrorIs(t, err, appointmentRepo.ErrTimeTaken)

	found, err := appointments.GetByExactTime(ctx, owner, at)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	inDay, err := appointments.GetByOwnerAndTimeRange(ctx, owner, at.Add(-9*time.Hour), at.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Len(t, inDay, 1)

	excluded, err := appointments.GetByOwnerAndTimeRange(ctx, owner, at.Add(-time.Hour), at)
	require.NoError(t, err)
	assert.Empty(t, excluded, "range end is exclusive")

	_, err = appointments.Delete(ctx, created.ID)
	require.NoError(t, err)
	_, err = appointments.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, appointmentRepo.ErrAppointmentNotFound)
}

func TestUsersAndCompanies(t *testing.T) {
	store := New()
	owner := seedOwner(t, store)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, &domain.User{Name: "Dup", Phone: "+79990000001"})
	assert.ErrorIs(t, err, ownerRepo.ErrPhoneTaken)

	user, err := store.GetUserByPhone(ctx, "+79990000001")
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, user.ID)

	_, err = store.GetUserByPhone(ctx, "+70000000000")
	assert.ErrorIs(t, err, ownerRepo.ErrUserNotFound)

	company, err := store.GetCompany(ctx, owner.CompanyID)
	require.NoError(t, err)
	company.CancellationGraceTime = 2 * time.Hour

	updated, err := store.UpdateCompany(ctx, company)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, updated.CancellationGraceTime)

	_, err = store.GetCompany(ctx, uuid.New())
	assert.ErrorIs(t, err, ownerRepo.ErrCompanyNotFound)
}

func TestTxManagerNestedCalls(t *testing.T) {
	tx := NewTxManager(New())
	calls := 0

	err := tx.DoSerializable(context.Background(), func(ctx context.Context) error {
		return tx.DoSerializable(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func priorities(t *testing.T, schedules []*domain.Schedule) map[string]int {
	t.Helper()
	result := make(map[string]int, len(schedules))
	for _, s := range schedules {
		result[s.Name] = s.Priority
	}
	return result
}

func TestTxManagerRearrangementIsAtomicForReaders(t *testing.T) {
	store := New()
	owner := seedOwner(t, store)
	tx := NewTxManager(store)
	ctx := context.Background()

	_, err := store.Create(ctx, &domain.Schedule{Owner: owner, Name: "a", Priority: 1})
	require.NoError(t, err)
	_, err = store.Create(ctx, &domain.Schedule{Owner: owner, Name: "b", Priority: 2})
	require.NoError(t, err)
	c, err := store.Create(ctx, &domain.Schedule{Owner: owner, Name: "c", Priority: 3})
	require.NoError(t, err)

	type readResult struct {
		list []*domain.Schedule
		err  error
	}
	read := make(chan readResult, 1)

	err = tx.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := store.BatchIncrementPriorities(txCtx, owner, 1, c.ID); err != nil {
			return err
		}

		go func() {
			list, err := store.GetByOwnerOrderedByPriority(ctx, owner)
			read <- readResult{list: list, err: err}
		}()

		select {
		case <-read:
			t.Error("reader outside the transaction saw the store mid-rearrangement")
		case <-time.After(50 * time.Millisecond):
		}

		target, err := store.GetByID(txCtx, c.ID)
		if err != nil {
			return err
		}
		target.Priority = 1
		_, err = store.Update(txCtx, target)
		return err
	})
	require.NoError(t, err)

	got := <-read
	require.NoError(t, got.err)
	assert.Equal(t, map[string]int{"c": 1, "a": 2, "b": 3}, priorities(t, got.list))
}

func TestTxManagerRollsBackOnError(t *testing.T) {
	store := New()
	owner := seedOwner(t, store)
	appointments := store.Appointments()
	tx := NewTxManager(store)
	ctx := context.Background()
	at := time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, &domain.Schedule{Owner: owner, Name: "a", Priority: 1})
	require.NoError(t, err)
	b, err := store.Create(ctx, &domain.Schedule{Owner: owner, Name: "b", Priority: 2})
	require.NoError(t, err)
	_, err = appointments.Create(ctx, &domain.Appointment{Owner: owner, Time: at, Title: "Haircut"})
	require.NoError(t, err)

	err = tx.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := store.BatchIncrementPriorities(txCtx, owner, 1, uuid.Nil); err != nil {
			return err
		}
		if _, err := store.Delete(txCtx, b.ID); err != nil {
			return err
		}
		if _, err := store.CreateUser(txCtx, &domain.User{Name: "Client", Phone: "+79990000009"}); err != nil {
			return err
		}
		_, err := appointments.Create(txCtx, &domain.Appointment{Owner: owner, Time: at, Title: "Again"})
		return err
	})
	require.ErrorIs(t, err, appointmentRepo.ErrTimeTaken)

	list, err := store.GetByOwnerOrderedByPriority(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, priorities(t, list))

	_, err = store.GetUserByPhone(ctx, "+79990000009")
	assert.ErrorIs(t, err, ownerRepo.ErrUserNotFound, "client created inside a failed block must not survive")

	inDay, err := appointments.GetByOwnerAndTimeRange(ctx, owner, at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inDay, 1)
}
