package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lunanails/salon-scheduler/internal/models"
)

const (
	dayKeyPrefix = "salon:day:"
	dayTTL       = 30 * time.Second
)

// DayCache is a read-through cache for per-day appointment listings,
// invalidated on every write to the day. A nil *DayCache is a no-op,
// so callers never branch on whether redis is configured.
type DayCache struct {
	rdb *redis.Client
}

// New returns nil when redisURL is empty or unparsable; booking paths
// then hit the store directly.
func New(redisURL string) *DayCache {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("cache disabled, bad REDIS_URL: %v", err)
		return nil
	}

	return &DayCache{rdb: redis.NewClient(opts)}
}

func (c *DayCache) GetDay(ctx context.Context, dateKey string) ([]models.Appointment, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, dayKeyPrefix+dateKey).Bytes()
	if err != nil {
		return nil, false
	}

	var apps []models.Appointment
	if err := json.Unmarshal(raw, &apps); err != nil {
		return nil, false
	}
	return apps, true
}

func (c *DayCache) SetDay(ctx context.Context, dateKey string, apps []models.Appointment) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(apps)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, dayKeyPrefix+dateKey, raw, dayTTL).Err(); err != nil {
		log.Printf("cache set failed for %s: %v", dateKey, err)
	}
}

func (c *DayCache) InvalidateDay(ctx context.Context, dateKey string) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, dayKeyPrefix+dateKey).Err(); err != nil {
		log.Printf("cache invalidate failed for %s: %v", dateKey, err)
	}
}
