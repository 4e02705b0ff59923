package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bellasalong/booking-platform/internal/observability/metrics"
)

// Cache memoizes computed slot lists in Redis. Every worker has a version
// counter that is bumped on each appointment write; the version is part of
// the slot key, so stale entries are never served and simply age out via
// TTL. A nil Cache disables caching.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.BookingMetrics
}

// NewCache creates a slot cache with the given TTL.
func NewCache(client *redis.Client, ttl time.Duration, m *metrics.BookingMetrics) *Cache {
	return &Cache{client: client, ttl: ttl, metrics: m}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) version(ctx context.Context, workerID string) int64 {
	v, err := c.client.Get(ctx, "salon:slotver:"+workerID).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *Cache) slotKey(ctx context.Context, workerID, date string, serviceIDs []string) string {
	return fmt.Sprintf("salon:slots:%s:%d:%s:%s",
		workerID, c.version(ctx, workerID), date, strings.Join(serviceIDs, ","))
}

// Get returns the cached slots for the current worker version, if any.
func (c *Cache) Get(ctx context.Context, workerID, date string, serviceIDs []string) ([]string, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.slotKey(ctx, workerID, date, serviceIDs)).Bytes()
	if err != nil {
		c.metrics.ObserveSlotCache("miss")
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.metrics.ObserveSlotCache("miss")
		return nil, false
	}
	c.metrics.ObserveSlotCache("hit")
	return slots, true
}

// Set stores the slots under the worker's current version.
func (c *Cache) Set(ctx context.Context, workerID, date string, serviceIDs []string, slots []string) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.slotKey(ctx, workerID, date, serviceIDs), raw, c.ttl)
}

// InvalidateWorker bumps the worker's version counter so every cached slot
// list for that worker stops matching.
func (c *Cache) InvalidateWorker(ctx context.Context, workerID string) error {
	if !c.enabled() {
		return nil
	}
	if err := c.client.Incr(ctx, "salon:slotver:"+workerID).Err(); err != nil {
		return fmt.Errorf("availability: bump slot version: %w", err)
	}
	return nil
}
