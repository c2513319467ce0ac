package ports

import (
	"context"
	"hotel-booking-service/internal/domain"
)

// Port: a boundary for reading and updating room occupancy.
type RoomStateRepository interface {
	// Return the current state of every room.
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	// Apply the given state changes atomically.
	SetStates(ctx context.Context, changes map[int]domain.RoomState) error
	// Mark every room available.
	Reset(ctx context.Context) error
}
