// Package cache holds Redis read-through decorators over storage repositories.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

const schedulesCacheName = "schedules"

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ScheduleRepository is the repository being cached.
type ScheduleRepository interface {
	GetByOwnerOrderedByPriority(ctx context.Context, owner domain.Owner) ([]*domain.Schedule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	Update(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	BatchIncrementPriorities(ctx context.Context, owner domain.Owner, threshold int, excludeID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ScheduleCache caches the per-owner schedule list, the hot read of availability lookups.
// Reads inside a transaction bypass the cache so row locks are still taken.
// Every write drops the owner's entry right away and once more after commit.
type ScheduleCache struct {
	inner       ScheduleRepository
	client      Client
	ttl         time.Duration
	requests    *prometheus.CounterVec
	serviceName string
	logger      Logger
}

// NewScheduleCache wraps inner. requests may be nil.
func NewScheduleCache(
	inner ScheduleRepository,
	client Client,
	ttl time.Duration,
	requests *prometheus.CounterVec,
	serviceName string,
	logger Logger,
) *ScheduleCache {
	return &ScheduleCache{
		inner:       inner,
		client:      client,
		ttl:         ttl,
		requests:    requests,
		serviceName: serviceName,
		logger:      logger,
	}
}

func ownerKey(owner domain.Owner) string {
	return fmt.Sprintf("%s:%s:%s", schedulesCacheName, owner.CompanyID, owner.UserID)
}

func (c *ScheduleCache) GetByOwnerOrderedByPriority(ctx context.Context, owner domain.Owner) ([]*domain.Schedule, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.inner.GetByOwnerOrderedByPriority(ctx, owner)
	}

	key := ownerKey(owner)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var schedules []*domain.Schedule
		if err := json.Unmarshal(raw, &schedules); err == nil {
			c.observe("hit")
			return schedules, nil
		}
		c.logger.Warn("ScheduleCache: corrupted entry %s: %v", key, err)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("ScheduleCache: redis get %s: %v", key, err)
	}
	c.observe("miss")

	schedules, err := c.inner.GetByOwnerOrderedByPriority(ctx, owner)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(schedules)
	if err != nil {
		c.logger.Warn("ScheduleCache: marshal %s: %v", key, err)
		return schedules, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("ScheduleCache: redis set %s: %v", key, err)
	}

	return schedules, nil
}

func (c *ScheduleCache) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *ScheduleCache) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	created, err := c.inner.Create(ctx, schedule)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, created.Owner)
	return created, nil
}

// Update drops both the old and the new owner when a schedule changes hands.
func (c *ScheduleCache) Update(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	before, err := c.inner.GetByID(ctx, schedule.ID)
	if err != nil {
		return nil, err
	}

	updated, err := c.inner.Update(ctx, schedule)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, updated.Owner)
	if before.Owner != updated.Owner {
		c.invalidate(ctx, before.Owner)
	}
	return updated, nil
}

func (c *ScheduleCache) BatchIncrementPriorities(ctx context.Context, owner domain.Owner, threshold int, excludeID uuid.UUID) (int64, error) {
	affected, err := c.inner.BatchIncrementPriorities(ctx, owner, threshold, excludeID)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx, owner)
	return affected, nil
}

func (c *ScheduleCache) Delete(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	deleted, err := c.inner.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, deleted.Owner)
	return deleted, nil
}

func (c *ScheduleCache) invalidate(ctx context.Context, owner domain.Owner) {
	key := ownerKey(owner)
	drop := func() {
		if err := c.client.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			c.logger.Warn("ScheduleCache: redis del %s: %v", key, err)
		}
	}

	if dbmetrics.IsInTransaction(ctx) {
		drop()
	}
	txmanager.AfterCommit(ctx, drop)
}

func (c *ScheduleCache) observe(result string) {
	if c.requests == nil {
		return
	}
	c.requests.WithLabelValues(c.serviceName, schedulesCacheName, result).Inc()
}
