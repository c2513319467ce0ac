package services

import (
	"context"
	"errors"
	"hotel-booking-service/internal/adapters/repositories"
	"hotel-booking-service/internal/domain"
	"slices"
	"testing"
	"time"
)

func newTestService(seed uint64) (*HotelService, *repositories.MemoryRoomRepository) {
	repo := repositories.NewMemoryRoomRepository()
	svc := NewHotelService(repo, NewAllocator(nil), seed)
	svc.now = func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestHotelServiceToggleAndUndo(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(1)

	st, err := svc.ToggleRoom(ctx, 101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != domain.RoomOccupied {
		t.Fatalf("state = %q, want occupied", st)
	}

	if _, err := svc.ToggleRoom(ctx, 111); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}

	entry, err := svc.Undo(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Kind != HistoryToggle {
		t.Fatalf("undo kind = %q, want toggle", entry.Kind)
	}

	snap, _ := repo.Snapshot(ctx)
	if snap[101] != domain.RoomAvailable {
		t.Fatalf("room 101 = %q after undo, want available", snap[101])
	}

	if _, err := svc.Undo(ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("err = %v, want ErrNothingToUndo", err)
	}
}

func TestHotelServiceBookBestAndExport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1)

	b, found, err := svc.BookBest(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("expected a booking")
	}
	if !slices.Equal(b.Rooms, []int{101, 102, 103}) || b.TravelTime != 2 {
		t.Fatalf("booking = %+v", b)
	}

	if _, err := svc.ToggleRoom(ctx, 102); !errors.Is(err, ErrRoomBooked) {
		t.Fatalf("err = %v, want ErrRoomBooked", err)
	}

	_, stats, err := svc.Rooms(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Booked != 3 || stats.Available != 94 {
		t.Fatalf("stats = %+v", stats)
	}

	next, err := svc.Propose(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(next.Rooms, []int{104, 105}) {
		t.Fatalf("proposal = %v, want [104 105]", next.Rooms)
	}

	exp, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(exp.Booked, []int{101, 102, 103}) || exp.TravelTime != 2 {
		t.Fatalf("export = %+v", exp)
	}
	if !exp.Timestamp.Equal(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("timestamp = %v", exp.Timestamp)
	}

	if _, ok := svc.LastBooking(); !ok {
		t.Fatalf("expected last booking")
	}
	if _, err := svc.Undo(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.LastBooking(); ok {
		t.Fatalf("last booking should be cleared by undo")
	}

	_, stats, _ = svc.Rooms(ctx)
	if stats.Booked != 0 {
		t.Fatalf("booked = %d after undo, want 0", stats.Booked)
	}
}

func TestHotelServiceConfirmValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(1)

	if _, err := svc.ToggleRoom(ctx, 204); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		rooms []int
		want  error
	}{
		{rooms: []int{203, 204}, want: ErrRoomUnavailable},
		{rooms: []int{203, 203}, want: ErrInvalidRequest},
		{rooms: []int{203, 1010}, want: ErrRoomNotFound},
		{rooms: nil, want: ErrInvalidRequest},
		{rooms: []int{101, 102, 103, 105, 106, 107}, want: ErrInvalidRequest},
	}
	for _, c := range cases {
		if _, err := svc.Confirm(ctx, c.rooms); !errors.Is(err, c.want) {
			t.Errorf("Confirm(%v) err = %v, want %v", c.rooms, err, c.want)
		}
	}

	b, err := svc.Confirm(ctx, []int{305, 301})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(b.Rooms, []int{301, 305}) || b.TravelTime != 4 {
		t.Fatalf("booking = %+v", b)
	}
}

func TestHotelServiceRandomOccupancy(t *testing.T) {
	ctx := context.Background()
	a, repo := newTestService(42)
	b, _ := newTestService(42)

	got, err := a.RandomOccupancy(ctx, DefaultOccupancyProbability)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 24 {
		t.Fatalf("occupied %d rooms, want 24", len(got))
	}
	if !slices.IsSorted(got) {
		t.Fatalf("rooms not sorted: %v", got)
	}

	other, _ := b.RandomOccupancy(ctx, DefaultOccupancyProbability)
	if !slices.Equal(got, other) {
		t.Fatalf("same seed produced %v and %v", got, other)
	}

	snap, _ := repo.Snapshot(ctx)
	for _, n := range got {
		if snap[n] != domain.RoomOccupied {
			t.Fatalf("room %d = %q, want occupied", n, snap[n])
		}
	}

	if _, err := a.Undo(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, _ = repo.Snapshot(ctx)
	if snap.Stats().Available != 97 {
		t.Fatalf("available = %d after undo, want 97", snap.Stats().Available)
	}

	if _, err := a.RandomOccupancy(ctx, 1.5); !errors.Is(err, ErrInvalidProbability) {
		t.Fatalf("err = %v, want ErrInvalidProbability", err)
	}
}

func TestHotelServiceBookBestNotFoundAndReset(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(1)

	if _, err := svc.RandomOccupancy(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, found, err := svc.BookBest(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected no booking in a full hotel")
	}

	if _, _, err := svc.BookBest(ctx, 6); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, _ := repo.Snapshot(ctx)
	if snap.Stats().Available != 97 {
		t.Fatalf("available = %d after reset, want 97", snap.Stats().Available)
	}
	if _, err := svc.Undo(ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("err = %v, want ErrNothingToUndo", err)
	}
}

// frozenRooms serves a fixed snapshot, like a second process reading before
// another one booked.
type frozenRooms struct {
	*repositories.MemoryRoomRepository
	snap domain.Snapshot
}

func (f frozenRooms) Snapshot(context.Context) (domain.Snapshot, error) {
	return f.snap.Clone(), nil
}

func TestHotelServiceConfirmLosesRaceOnSharedStore(t *testing.T) {
	ctx := context.Background()
	first, repo := newTestService(1)
	before, _ := repo.Snapshot(ctx)
	second := NewHotelService(frozenRooms{MemoryRoomRepository: repo, snap: before}, NewAllocator(nil), 2)

	if _, err := first.Confirm(ctx, []int{101, 102}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := second.Confirm(ctx, []int{102, 103}); !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("err = %v, want ErrRoomUnavailable", err)
	}
	if _, ok := second.LastBooking(); ok {
		t.Fatalf("failed confirm must not record a booking")
	}

	snap, _ := repo.Snapshot(ctx)
	if snap[103] != domain.RoomAvailable {
		t.Fatalf("room 103 = %q, want available", snap[103])
	}
	if _, err := second.Undo(ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("err = %v, want ErrNothingToUndo", err)
	}
}
