package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/platform/obs"
	"strings"
)

// SQLite backed cache for allocation results. Keys are produced by
// services.AllocationKey and already identify the full request.
type SqliteAllocationCache struct {
	DB *sql.DB
}

func NewSqliteAllocationCache(db *sql.DB) *SqliteAllocationCache {
	return &SqliteAllocationCache{DB: db}
}

// Create the cache table if it does not exist yet.
func (s *SqliteAllocationCache) Init(ctx context.Context) (err error) {
	defer obs.Time(ctx, "allocation.cache.sqlite.Init")(&err)

	if s.DB == nil {
		return errors.New("allocation cache: db is nil")
	}

	_, err = s.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS allocation_cache (
		cache_key TEXT PRIMARY KEY,
		rooms TEXT NOT NULL,
		travel_time INTEGER NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("init allocation cache: %w", err)
	}
	return nil
}

func (s *SqliteAllocationCache) Get(ctx context.Context, key string) (_ domain.Allocation, _ bool, err error) {
	defer obs.Time(ctx, "allocation.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return domain.Allocation{}, false, errors.New("allocation cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Allocation{}, false, errors.New("get allocation cache: key must not be empty")
	}

	var rooms string
	var travel int
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		rooms,
		travel_time
	FROM allocation_cache
	WHERE cache_key = ?;
	`, key).Scan(&rooms, &travel)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Allocation{}, false, nil
	}
	if err != nil {
		return domain.Allocation{}, false, fmt.Errorf("get allocation cache: query allocation_cache table: %w", err)
	}

	var v cachedAllocation
	if err := json.Unmarshal([]byte(rooms), &v.Rooms); err != nil {
		return domain.Allocation{}, false, fmt.Errorf("get allocation cache: decode rooms: %w", err)
	}
	v.TravelTime = travel

	return decode(v), true, nil
}

func (s *SqliteAllocationCache) Put(ctx context.Context, key string, alloc domain.Allocation) (err error) {
	defer obs.Time(ctx, "allocation.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("allocation cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert allocation cache: key must not be empty")
	}

	v := encode(alloc)
	rooms, err := json.Marshal(v.Rooms)
	if err != nil {
		return fmt.Errorf("insert allocation cache: encode rooms: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO allocation_cache (
		cache_key,
		rooms,
		travel_time
	)
	VALUES (?, ?, ?);
	`, key, string(rooms), v.TravelTime)
	if err != nil {
		return fmt.Errorf("insert allocation cache key=%q: %w", key, err)
	}

	return nil
}
