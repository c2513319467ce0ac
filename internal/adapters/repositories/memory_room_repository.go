package repositories

import (
	"context"
	"fmt"
	"hotel-booking-service/internal/domain"
	"sync"
)

// In-memory implementation of the RoomStateRepository port, seeded with every
// room available.
type MemoryRoomRepository struct {
	mu    sync.RWMutex
	rooms domain.Snapshot
}

func NewMemoryRoomRepository() *MemoryRoomRepository {
	return &MemoryRoomRepository{rooms: domain.NewAvailableSnapshot()}
}

func (m *MemoryRoomRepository) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms.Clone(), nil
}

func (m *MemoryRoomRepository) SetStates(ctx context.Context, changes map[int]domain.RoomState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for n, st := range changes {
		cur, ok := m.rooms[n]
		if !ok {
			return fmt.Errorf("memory room repository: unknown room %d", n)
		}
		if st == domain.RoomBooked && cur != domain.RoomAvailable {
			return fmt.Errorf("memory room repository: book room %d: %w", n, domain.ErrRoomUnavailable)
		}
	}
	for n, st := range changes {
		m.rooms[n] = st
	}
	return nil
}

func (m *MemoryRoomRepository) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms = domain.NewAvailableSnapshot()
	return nil
}
