package services

import (
	"context"
	"fmt"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/platform/obs"
	"hotel-booking-service/internal/ports"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Allocator fronts Allocate with an optional result cache and collapses
// concurrent identical requests into one search.
type Allocator struct {
	cache ports.AllocationCache
	group singleflight.Group
}

// NewAllocator returns an Allocator. cache may be nil.
func NewAllocator(cache ports.AllocationCache) *Allocator {
	return &Allocator{cache: cache}
}

func (a *Allocator) Allocate(ctx context.Context, snapshot domain.Snapshot, count int) (_ domain.Allocation, err error) {
	defer obs.Time(ctx, "allocator.Allocate")(&err)

	if count < MinRoomsPerBooking || count > MaxRoomsPerBooking {
		return Allocate(snapshot, count)
	}

	key := AllocationKey(snapshot, count)

	// Cache failures degrade to a fresh search.
	if a.cache != nil {
		alloc, ok, err := a.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Str("req_id", obs.RequestID(ctx)).Str("key", key).Err(err).Msg("allocation cache get failed")
		} else if ok {
			return cloneAllocation(alloc), nil
		}
	}

	v, err, _ := a.group.Do(key, func() (any, error) {
		return Allocate(snapshot, count)
	})
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("allocator: %w", err)
	}
	alloc := v.(domain.Allocation)

	if a.cache != nil {
		if err := a.cache.Put(ctx, key, alloc); err != nil {
			log.Warn().Str("req_id", obs.RequestID(ctx)).Str("key", key).Err(err).Msg("allocation cache put failed")
		}
	}

	return cloneAllocation(alloc), nil
}

// AllocationKey identifies a request by room count and the set of available
// rooms, which is everything Allocate depends on.
func AllocationKey(snapshot domain.Snapshot, count int) string {
	h := xxhash.New()
	buf := make([]byte, 0, 8)
	for _, n := range domain.AllRoomNumbers() {
		if !snapshot.IsAvailable(n) {
			continue
		}
		buf = strconv.AppendInt(buf[:0], int64(n), 10)
		buf = append(buf, ',')
		_, _ = h.Write(buf)
	}
	return fmt.Sprintf("alloc:v1:%d:%016x", count, h.Sum64())
}

func cloneAllocation(a domain.Allocation) domain.Allocation {
	rooms := slices.Clone(a.Rooms)
	if rooms == nil {
		rooms = []int{}
	}
	return domain.Allocation{Rooms: rooms, TravelTime: a.TravelTime}
}
