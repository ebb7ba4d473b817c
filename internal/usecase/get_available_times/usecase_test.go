package get_available_times

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	store *memory.Store
	owner domain.Owner
	uc    *UseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	store := memory.New()
	company := store.AddCompany(&domain.Company{Name: "Barbershop", CancellationGraceTime: time.Hour})
	user := store.AddUser(&domain.User{Name: "Anna", Phone: "+79990000001"})
	owner := domain.Owner{CompanyID: company.ID, UserID: user.ID}
	store.AddMembership(owner)

	uc := NewUseCase(store, store.Appointments(), store, time.UTC, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})

	return &fixture{store: store, owner: owner, uc: uc}
}

func (f *fixture) addSchedule(t *testing.T, s *domain.Schedule) {
	t.Helper()
	s.Owner = f.owner
	_, err := f.store.Create(context.Background(), s)
	require.NoError(t, err)
}

func (f *fixture) request(date string) *Request {
	return &Request{CompanyID: f.owner.CompanyID, UserID: f.owner.UserID, Date: date}
}

func TestExecuteMergesApplicableSchedules(t *testing.T) {
	f := newFixture(t, longAgo)
	f.addSchedule(t, &domain.Schedule{
		Name:         "short day",
		Priority:     1,
		Recurrence:   domain.NewOnDates(types.MustParseDate("12/10/2024")),
		ShiftStart:   types.MustParseTimeOfDay("10:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("14:00:00"),
		SlotDuration: time.Hour,
	})
	f.addSchedule(t, &domain.Schedule{
		Name:         "december",
		Priority:     2,
		Recurrence:   domain.NewDateRange(types.MustParseDate("12/01/2024"), types.MustParseDate("12/31/2024")),
		ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
		SlotDuration: time.Hour,
		Breaks:       []domain.Break{lunch("12:00:00", time.Hour)},
	})

	resp, err := f.uc.Execute(context.Background(), f.request("12/10/2024"))
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "13:00"}, starts(resp.Slots))

	resp, err = f.uc.Execute(context.Background(), f.request("12/11/2024"))
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
}

func TestExecuteExcludesBookedTimes(t *testing.T) {
	f := newFixture(t, longAgo)
	f.addSchedule(t, &domain.Schedule{
		Priority:     1,
		Recurrence:   domain.NewOnDates(types.MustParseDate("12/10/2024")),
		ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
		SlotDuration: time.Hour,
	})

	_, err := f.store.Appointments().Create(context.Background(), &domain.Appointment{Owner: f.owner, Time: at(9, 0)})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), f.request("12/10/2024"))
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 8)
	assert.False(t, resp.HasSlotStartingAt(at(9, 0)))
	assert.True(t, resp.HasSlotStartingAt(at(10, 0)))
}

func TestExecuteIsIdempotent(t *testing.T) {
	f := newFixture(t, longAgo)
	f.addSchedule(t, &domain.Schedule{
		Priority:     1,
		Recurrence:   domain.NewOnDates(types.MustParseDate("12/10/2024")),
		ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
		SlotDuration: 45 * time.Minute,
		Breaks:       []domain.Break{lunch("12:00:00", 30*time.Minute)},
	})

	first, err := f.uc.Execute(context.Background(), f.request("12/10/2024"))
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), f.request("12/10/2024"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecuteErrors(t *testing.T) {
	f := newFixture(t, longAgo)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, f.request("2024-12-10"))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = f.uc.Execute(ctx, &Request{CompanyID: f.owner.CompanyID, UserID: uuid.New(), Date: "12/10/2024"})
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	_, err = f.uc.Execute(ctx, f.request("12/10/2024"))
	assert.ErrorIs(t, err, ErrNoSchedulesConfigured)

	f.addSchedule(t, &domain.Schedule{
		Priority:     1,
		Recurrence:   domain.NewOnDates(types.MustParseDate("12/11/2024")),
		ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
		SlotDuration: time.Hour,
	})
	_, err = f.uc.Execute(ctx, f.request("12/10/2024"))
	assert.ErrorIs(t, err, ErrNoSchedulesConfigured)
}

func TestExecuteReturnsEmptyListWhenDayIsOver(t *testing.T) {
	f := newFixture(t, at(18, 0))
	f.addSchedule(t, &domain.Schedule{
		Priority:     1,
		Recurrence:   domain.NewOnDates(types.MustParseDate("12/10/2024")),
		ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
		SlotDuration: time.Hour,
	})

	resp, err := f.uc.Execute(context.Background(), f.request("12/10/2024"))
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}
