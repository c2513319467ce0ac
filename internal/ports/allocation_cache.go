package ports

import (
	"context"
	"hotel-booking-service/internal/domain"
)

// Optional store for allocation results keyed by snapshot and room count.
// Allocation is deterministic, so a hit is always equal to recomputing.
type AllocationCache interface {
	Get(ctx context.Context, key string) (domain.Allocation, bool, error)
	Put(ctx context.Context, key string, alloc domain.Allocation) error
}
