package services

import (
	"context"
	"fmt"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/ports"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

type HistoryKind string

const (
	HistoryRandom  HistoryKind = "random"
	HistoryToggle  HistoryKind = "toggle"
	HistoryBooking HistoryKind = "booking"
)

// One undoable change made through the HotelService.
type HistoryEntry struct {
	Kind  HistoryKind
	Rooms []int
}

// DefaultOccupancyProbability is the share of available rooms RandomOccupancy
// marks occupied when callers do not choose one.
const DefaultOccupancyProbability = 0.25

// HotelService is the stateful shell around the allocation engine. It owns
// room state (through the repository), an undo history, the last confirmed
// booking and its own random source. All operations are serialized.
type HotelService struct {
	rooms     ports.RoomStateRepository
	allocator *Allocator
	now       func() time.Time

	mu          sync.Mutex
	rng         *rand.Rand
	history     []HistoryEntry
	lastBooking *domain.Booking
}

// NewHotelService wires the shell. The seed makes RandomOccupancy reproducible.
func NewHotelService(rooms ports.RoomStateRepository, allocator *Allocator, seed uint64) *HotelService {
	if allocator == nil {
		allocator = NewAllocator(nil)
	}
	return &HotelService{
		rooms:     rooms,
		allocator: allocator,
		now:       time.Now,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Rooms returns the current room states and their counts.
func (s *HotelService) Rooms(ctx context.Context) (domain.Snapshot, domain.Stats, error) {
	snap, err := s.rooms.Snapshot(ctx)
	if err != nil {
		return nil, domain.Stats{}, fmt.Errorf("rooms: %w", err)
	}
	return snap, snap.Stats(), nil
}

// ToggleRoom flips a room between available and occupied.
func (s *HotelService) ToggleRoom(ctx context.Context, room int) (domain.RoomState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.rooms.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("toggle room: %w", err)
	}

	cur, ok := snap[room]
	if !ok || !domain.IsValidRoom(room) {
		return "", fmt.Errorf("toggle room %d: %w", room, ErrRoomNotFound)
	}
	if cur == domain.RoomBooked {
		return "", fmt.Errorf("toggle room %d: %w", room, ErrRoomBooked)
	}

	next := flip(cur)
	if err := s.rooms.SetStates(ctx, map[int]domain.RoomState{room: next}); err != nil {
		return "", fmt.Errorf("toggle room %d: %w", room, err)
	}

	s.history = append(s.history, HistoryEntry{Kind: HistoryToggle, Rooms: []int{room}})
	return next, nil
}

// RandomOccupancy marks floor(available*p) randomly chosen available rooms as
// occupied and returns them ascending.
func (s *HotelService) RandomOccupancy(ctx context.Context, p float64) ([]int, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("random occupancy: %v: %w", p, ErrInvalidProbability)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.rooms.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("random occupancy: %w", err)
	}

	available := make([]int, 0, len(snap))
	for _, n := range domain.AllRoomNumbers() {
		if snap.IsAvailable(n) {
			available = append(available, n)
		}
	}

	s.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	chosen := slices.Clone(available[:int(math.Floor(float64(len(available))*p))])
	slices.Sort(chosen)

	if len(chosen) > 0 {
		changes := make(map[int]domain.RoomState, len(chosen))
		for _, n := range chosen {
			changes[n] = domain.RoomOccupied
		}
		if err := s.rooms.SetStates(ctx, changes); err != nil {
			return nil, fmt.Errorf("random occupancy: %w", err)
		}
	}

	s.history = append(s.history, HistoryEntry{Kind: HistoryRandom, Rooms: chosen})
	return chosen, nil
}

// Propose runs the allocation engine against the current room states without
// changing anything. Rooms come back ascending.
func (s *HotelService) Propose(ctx context.Context, count int) (domain.Allocation, error) {
	snap, err := s.rooms.Snapshot(ctx)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("propose: %w", err)
	}
	return s.propose(ctx, snap, count)
}

func (s *HotelService) propose(ctx context.Context, snap domain.Snapshot, count int) (domain.Allocation, error) {
	alloc, err := s.allocator.Allocate(ctx, snap, count)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("propose: %w", err)
	}
	slices.Sort(alloc.Rooms)
	return alloc, nil
}

// Confirm books the given rooms. Every room must currently be available.
func (s *HotelService) Confirm(ctx context.Context, rooms []int) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.rooms.Snapshot(ctx)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("confirm booking: %w", err)
	}
	return s.confirm(ctx, snap, rooms)
}

// BookBest proposes an allocation for count rooms and confirms it in one step.
// found is false when no allocation was possible; nothing is booked then.
func (s *HotelService) BookBest(ctx context.Context, count int) (_ domain.Booking, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.rooms.Snapshot(ctx)
	if err != nil {
		return domain.Booking{}, false, fmt.Errorf("book best: %w", err)
	}

	alloc, err := s.propose(ctx, snap, count)
	if err != nil {
		return domain.Booking{}, false, fmt.Errorf("book best: %w", err)
	}
	if !alloc.Found() {
		return domain.Booking{}, false, nil
	}

	b, err := s.confirm(ctx, snap, alloc.Rooms)
	if err != nil {
		return domain.Booking{}, false, fmt.Errorf("book best: %w", err)
	}
	return b, true, nil
}

func (s *HotelService) confirm(ctx context.Context, snap domain.Snapshot, rooms []int) (domain.Booking, error) {
	if len(rooms) < MinRoomsPerBooking || len(rooms) > MaxRoomsPerBooking {
		return domain.Booking{}, fmt.Errorf(
			"confirm booking: %d rooms outside %d..%d: %w",
			len(rooms), MinRoomsPerBooking, MaxRoomsPerBooking, ErrInvalidRequest,
		)
	}

	sorted := slices.Clone(rooms)
	slices.Sort(sorted)
	if len(slices.Compact(slices.Clone(sorted))) != len(sorted) {
		return domain.Booking{}, fmt.Errorf("confirm booking: duplicate rooms: %w", ErrInvalidRequest)
	}

	changes := make(map[int]domain.RoomState, len(sorted))
	for _, n := range sorted {
		if _, ok := snap[n]; !ok || !domain.IsValidRoom(n) {
			return domain.Booking{}, fmt.Errorf("confirm booking: room %d: %w", n, ErrRoomNotFound)
		}
		if !snap.IsAvailable(n) {
			return domain.Booking{}, fmt.Errorf("confirm booking: room %d: %w", n, ErrRoomUnavailable)
		}
		changes[n] = domain.RoomBooked
	}

	if err := s.rooms.SetStates(ctx, changes); err != nil {
		return domain.Booking{}, fmt.Errorf("confirm booking: %w", err)
	}

	b := domain.Booking{
		Rooms:      sorted,
		TravelTime: TravelTime(sorted),
		BookedAt:   s.now(),
	}
	s.lastBooking = &b
	s.history = append(s.history, HistoryEntry{Kind: HistoryBooking, Rooms: slices.Clone(sorted)})

	return b, nil
}

// LastBooking returns the most recent confirmed booking that was not undone.
func (s *HotelService) LastBooking() (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastBooking == nil {
		return domain.Booking{}, false
	}
	b := *s.lastBooking
	b.Rooms = slices.Clone(b.Rooms)
	return b, true
}

// Undo reverts the most recent change and returns it.
func (s *HotelService) Undo(ctx context.Context) (HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return HistoryEntry{}, ErrNothingToUndo
	}
	last := s.history[len(s.history)-1]

	changes := make(map[int]domain.RoomState, len(last.Rooms))
	switch last.Kind {
	case HistoryRandom, HistoryBooking:
		for _, n := range last.Rooms {
			changes[n] = domain.RoomAvailable
		}
	case HistoryToggle:
		snap, err := s.rooms.Snapshot(ctx)
		if err != nil {
			return HistoryEntry{}, fmt.Errorf("undo: %w", err)
		}
		for _, n := range last.Rooms {
			changes[n] = flip(snap[n])
		}
	}

	if len(changes) > 0 {
		if err := s.rooms.SetStates(ctx, changes); err != nil {
			return HistoryEntry{}, fmt.Errorf("undo %s: %w", last.Kind, err)
		}
	}

	if last.Kind == HistoryBooking {
		s.lastBooking = nil
	}
	s.history = s.history[:len(s.history)-1]

	return last, nil
}

// Reset makes every room available and forgets history and the last booking.
func (s *HotelService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rooms.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.history = nil
	s.lastBooking = nil
	return nil
}

// Export lists every booked room with the travel time across all of them.
func (s *HotelService) Export(ctx context.Context) (domain.BookingExport, error) {
	snap, err := s.rooms.Snapshot(ctx)
	if err != nil {
		return domain.BookingExport{}, fmt.Errorf("export: %w", err)
	}

	booked := make([]int, 0)
	for _, n := range domain.AllRoomNumbers() {
		if snap[n] == domain.RoomBooked {
			booked = append(booked, n)
		}
	}

	return domain.BookingExport{
		Booked:     booked,
		Timestamp:  s.now().UTC(),
		TravelTime: TravelTime(booked),
	}, nil
}

func flip(st domain.RoomState) domain.RoomState {
	if st == domain.RoomAvailable {
		return domain.RoomOccupied
	}
	return domain.RoomAvailable
}
