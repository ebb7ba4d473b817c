package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeRedis struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	deletes int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(val), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	f.deletes++
	return redis.NewIntResult(n, nil)
}

type fixture struct {
	store   *memory.Store
	redis   *fakeRedis
	metrics *metrics.Metrics
	cache   *ScheduleCache
	owner   domain.Owner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	company := store.AddCompany(&domain.Company{Name: "Barbershop"})
	user := store.AddUser(&domain.User{Name: "Anna", Phone: "+79990000001"})
	owner := domain.Owner{CompanyID: company.ID, UserID: user.ID}
	store.AddMembership(owner)

	fake := newFakeRedis()
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	return &fixture{
		store:   store,
		redis:   fake,
		metrics: m,
		cache:   NewScheduleCache(store, fake, time.Minute, m.CacheRequests, "test", logger.NewNop()),
		owner:   owner,
	}
}

func (f *fixture) schedule(name string, priority int) *domain.Schedule {
	return &domain.Schedule{
		Owner:        f.owner,
		Name:         name,
		Priority:     priority,
		Recurrence:   domain.NewDateRange(types.MustParseDate("12/01/2024"), types.MustParseDate("12/31/2024"), time.Monday),
		ShiftStart:   types.MustParseTimeOfDay("09:00:00"),
		ShiftEnd:     types.MustParseTimeOfDay("18:00:00"),
		SlotDuration: 30 * time.Minute,
		Breaks:       []domain.Break{{Name: "lunch", Start: types.MustParseTimeOfDay("13:00:00"), Duration: time.Hour}},
	}
}

func (f *fixture) count(result string) float64 {
	var m dto.Metric
	if err := f.metrics.CacheRequests.WithLabelValues("test", schedulesCacheName, result).Write(&m); err != nil {
		return -1
	}
	return m.GetCounter().GetValue()
}

func TestReadThrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.cache.Create(ctx, f.schedule("december", 1))
	require.NoError(t, err)

	first, err := f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, float64(1), f.count("miss"))
	assert.Contains(t, f.redis.data, ownerKey(f.owner))

	second, err := f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)
	assert.Equal(t, float64(1), f.count("hit"))

	require.Len(t, second, 1)
	assert.Equal(t, created.ID, second[0].ID)
	assert.Equal(t, created.Recurrence, second[0].Recurrence)
	assert.Equal(t, created.ShiftStart, second[0].ShiftStart)
	assert.Equal(t, created.SlotDuration, second[0].SlotDuration)
	assert.Equal(t, created.Breaks, second[0].Breaks)
}

func TestWritesInvalidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.cache.Create(ctx, f.schedule("a", 1))
	require.NoError(t, err)
	_, err = f.cache.Create(ctx, f.schedule("b", 2))
	require.NoError(t, err)

	_, err = f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)
	require.Contains(t, f.redis.data, ownerKey(f.owner))

	_, err = f.cache.BatchIncrementPriorities(ctx, f.owner, 1, a.ID)
	require.NoError(t, err)
	assert.NotContains(t, f.redis.data, ownerKey(f.owner))

	list, err := f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[1].Priority)

	_, err = f.cache.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.NotContains(t, f.redis.data, ownerKey(f.owner))

	list, err = f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateInvalidatesPreviousOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.cache.Create(ctx, f.schedule("a", 1))
	require.NoError(t, err)
	_, err = f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)

	other := domain.Owner{CompanyID: f.owner.CompanyID, UserID: f.store.AddUser(&domain.User{Name: "Boris", Phone: "+79990000002"}).ID}
	f.store.AddMembership(other)

	s.Owner = other
	_, err = f.cache.Update(ctx, s)
	require.NoError(t, err)
	assert.NotContains(t, f.redis.data, ownerKey(f.owner))

	list, err := f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRedisFailureFallsBackToStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.cache.Create(ctx, f.schedule("a", 1))
	require.NoError(t, err)

	f.redis.getErr = errors.New("connection refused")

	list, err := f.cache.GetByOwnerOrderedByPriority(ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, float64(1), f.count("miss"))
}
