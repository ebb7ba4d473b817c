package make_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/memory"
	ownerRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/owner"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_times"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	owner domain.Owner
	uc    *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	company := store.AddCompany(&domain.Company{Name: "Barbershop", CancellationGraceTime: time.Hour})
	user := store.AddUser(&domain.User{Name: "Anna", Phone: "+79990000001"})
	owner := domain.Owner{CompanyID: company.ID, UserID: user.ID}
	store.AddMembership(owner)

	_, err := store.Create(context.Background(), &domain.Schedule{
		Owner:        owner,
		Name:         "december",
		Priority:     1,
		Recurrence:   domain.NewDateRange(types.MustParseDate("12/01/2024"), types.MustParseDate("12/31/2024")),
		ShiftStart:   types.MustParseTimeOfDay("08:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("17:00:00"),
		SlotDuration: time.Hour,
		Breaks:       []domain.Break{{Name: "lunch", Start: types.MustParseTimeOfDay("12:00:00"), Duration: time.Hour}},
	})
	require.NoError(t, err)

	clock := fixedTime{now: now}
	availability := get_available_times.NewUseCase(store, store.Appointments(), store, time.UTC, logger.NewNop()).
		WithTimeProvider(clock)
	uc := NewUseCase(store.Appointments(), store, availability, memory.NewTxManager(store), logger.NewNop()).
		WithTimeProvider(clock)

	return &fixture{store: store, owner: owner, uc: uc}
}

func (f *fixture) request(at time.Time, phone string) *Request {
	return &Request{
		CompanyID:   f.owner.CompanyID,
		UserID:      f.owner.UserID,
		Title:       "Haircut",
		Time:        at,
		ClientName:  "Client",
		ClientPhone: phone,
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.December, day, hour, minute, 0, 0, time.UTC)
}

func TestExecuteCreatesAppointmentAndClient(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(at(10, 10, 0), "+79990000002"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "Haircut", resp.Title)
	assert.True(t, resp.Time.Equal(at(10, 10, 0)))
	assert.Equal(t, f.owner.CompanyID, resp.CompanyID)
	assert.Equal(t, f.owner.UserID, resp.UserID)

	client, err := f.store.GetUserByPhone(context.Background(), "+79990000002")
	require.NoError(t, err)
	assert.Equal(t, client.ID, resp.ClientUserID)
	assert.Equal(t, "Client", client.Name)

	// повторная запись того же клиента не создаёт нового пользователя
	again, err := f.uc.Execute(context.Background(), f.request(at(10, 11, 0), "+79990000002"))
	require.NoError(t, err)
	assert.Equal(t, client.ID, again.ClientUserID)
}

func TestExecuteTimeAlreadyTaken(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 10, 0), "+79990000002"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request(at(10, 10, 0), "+79990000003"))
	assert.ErrorIs(t, err, ErrTimeAlreadyTaken)

	_, err = f.store.GetUserByPhone(context.Background(), "+79990000003")
	assert.ErrorIs(t, err, ownerRepo.ErrUserNotFound)
}

func TestExecutePastTime(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(now, "+79990000002"))
	assert.ErrorIs(t, err, ErrPastTime)

	_, err = f.uc.Execute(context.Background(), f.request(now.Add(-time.Hour), "+79990000002"))
	assert.ErrorIs(t, err, ErrPastTime)
}

func TestExecuteTimeNotAvailable(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
	}{
		{name: "not a slot start", at: at(10, 10, 30)},
		{name: "inside break", at: at(10, 12, 0)},
		{name: "after shift", at: at(10, 17, 0)},
		{name: "half past last slot", at: at(10, 16, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.Execute(context.Background(), f.request(tt.at, "+79990000002"))
			assert.ErrorIs(t, err, ErrTimeNotAvailable)

			_, err = f.store.GetUserByPhone(context.Background(), "+79990000002")
			assert.ErrorIs(t, err, ownerRepo.ErrUserNotFound)
		})
	}
}

func TestExecuteNoSchedulesConfigured(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(time.Date(2025, time.January, 10, 10, 0, 0, 0, time.UTC), "+79990000002"))
	assert.ErrorIs(t, err, ErrNoSchedulesConfigured)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{name: "empty title", mutate: func(req *Request) { req.Title = "" }, wantErr: ErrInvalidFormat},
		{name: "phone without plus", mutate: func(req *Request) { req.ClientPhone = "89990000002" }, wantErr: ErrInvalidFormat},
		{name: "empty client name", mutate: func(req *Request) { req.ClientName = "" }, wantErr: ErrInvalidFormat},
		{name: "zero time", mutate: func(req *Request) { req.Time = time.Time{} }, wantErr: ErrInvalidFormat},
		{name: "format wins over past time", mutate: func(req *Request) {
			req.Title = ""
			req.Time = now.Add(-time.Hour)
		}, wantErr: ErrInvalidFormat},
		{name: "unknown owner", mutate: func(req *Request) { req.UserID = uuid.New() }, wantErr: ErrOwnerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(at(10, 10, 0), "+79990000002")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
