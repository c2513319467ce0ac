package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

type cachedAllocation struct {
	Rooms      []int `json:"rooms"`
	TravelTime int   `json:"travel_time"`
}

// RedisAllocationCache stores allocation results in Redis with a TTL.
type RedisAllocationCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisAllocationCache returns a cache on client. A non-positive ttl keeps
// entries until evicted.
func NewRedisAllocationCache(client redis.UniversalClient, ttl time.Duration) *RedisAllocationCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisAllocationCache{client: client, ttl: ttl}
}

func (c *RedisAllocationCache) Get(ctx context.Context, key string) (_ domain.Allocation, _ bool, err error) {
	defer obs.Time(ctx, "allocation.cache.redis.Get")(&err)

	if c.client == nil {
		return domain.Allocation{}, false, errors.New("allocation cache: redis client is nil")
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Allocation{}, false, nil
	}
	if err != nil {
		return domain.Allocation{}, false, fmt.Errorf("get allocation cache: key=%q: %w", key, err)
	}

	var v cachedAllocation
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.Allocation{}, false, fmt.Errorf("get allocation cache: decode key=%q: %w", key, err)
	}

	return decode(v), true, nil
}

func (c *RedisAllocationCache) Put(ctx context.Context, key string, alloc domain.Allocation) (err error) {
	defer obs.Time(ctx, "allocation.cache.redis.Put")(&err)

	if c.client == nil {
		return errors.New("allocation cache: redis client is nil")
	}

	raw, err := json.Marshal(encode(alloc))
	if err != nil {
		return fmt.Errorf("put allocation cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put allocation cache: key=%q: %w", key, err)
	}
	return nil
}

func encode(a domain.Allocation) cachedAllocation {
	rooms := a.Rooms
	if rooms == nil {
		rooms = []int{}
	}
	return cachedAllocation{Rooms: rooms, TravelTime: a.TravelTime}
}

func decode(v cachedAllocation) domain.Allocation {
	rooms := v.Rooms
	if rooms == nil {
		rooms = []int{}
	}
	return domain.Allocation{Rooms: rooms, TravelTime: v.TravelTime}
}
