package services

import (
	"errors"
	"hotel-booking-service/internal/domain"
	"maps"
	"math/rand/v2"
	"slices"
	"testing"
)

// onlyAvailable builds a snapshot where every room is occupied except the given ones.
func onlyAvailable(rooms ...int) domain.Snapshot {
	s := domain.NewAvailableSnapshot()
	for n := range s {
		s[n] = domain.RoomOccupied
	}
	for _, n := range rooms {
		s[n] = domain.RoomAvailable
	}
	return s
}

func TestAllocateRejectsInvalidCount(t *testing.T) {
	for _, count := range []int{-1, 0, 6, 10} {
		_, err := Allocate(domain.NewAvailableSnapshot(), count)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("count=%d: err = %v, want ErrInvalidRequest", count, err)
		}
	}
}

func TestAllocate(t *testing.T) {
	preferSameFloor := domain.NewAvailableSnapshot()
	preferSameFloor[103] = domain.RoomOccupied
	preferSameFloor[104] = domain.RoomOccupied

	strayRoom := onlyAvailable(205)
	strayRoom[111] = domain.RoomAvailable

	tests := []struct {
		name     string
		snapshot domain.Snapshot
		count    int
		want     []int
		wantTime int
	}{
		{
			name:     "empty hotel starts on first floor",
			snapshot: domain.NewAvailableSnapshot(),
			count:    3,
			want:     []int{101, 102, 103},
			wantTime: 2,
		},
		{
			name:     "same floor around occupied rooms",
			snapshot: preferSameFloor,
			count:    4,
			want:     []int{105, 106, 107, 108},
			wantTime: 3,
		},
		{
			name:     "two floors when neither suffices",
			snapshot: onlyAvailable(101, 102, 201, 202),
			count:    4,
			want:     []int{101, 102, 201, 202},
			wantTime: 4,
		},
		{
			name:     "same floor beats cheaper cross floor",
			snapshot: onlyAvailable(101, 110, 201),
			count:    2,
			want:     []int{101, 110},
			wantTime: 9,
		},
		{
			name:     "skips fully occupied floors",
			snapshot: onlyAvailable(101, 102, 501, 502),
			count:    4,
			want:     []int{101, 102, 501, 502},
			wantTime: 10,
		},
		{
			name:     "first minimum wins ties",
			snapshot: onlyAvailable(101, 201, 301),
			count:    2,
			want:     []int{101, 201},
			wantTime: 2,
		},
		{
			name:     "rooms outside topology ignored",
			snapshot: strayRoom,
			count:    1,
			want:     []int{205},
			wantTime: 0,
		},
		{
			name:     "top floor",
			snapshot: onlyAvailable(1001, 1003, 1004, 1007, 905),
			count:    3,
			want:     []int{1001, 1003, 1004},
			wantTime: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.snapshot, tt.count)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got.Rooms, tt.want) {
				t.Fatalf("rooms = %v, want %v", got.Rooms, tt.want)
			}
			if got.TravelTime != tt.wantTime {
				t.Fatalf("travel time = %d, want %d", got.TravelTime, tt.wantTime)
			}
		})
	}
}

func TestAllocateNoRoomsLeft(t *testing.T) {
	cases := map[string]domain.Snapshot{
		"fully occupied": onlyAvailable(),
		"too few rooms":  onlyAvailable(101, 201),
	}

	for name, snap := range cases {
		got, err := Allocate(snap, 3)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got.Found() || got.Rooms == nil || len(got.Rooms) != 0 || got.TravelTime != 0 {
			t.Fatalf("%s: got %+v, want empty allocation", name, got)
		}
	}
}

func TestAllocateInvariantsOnRandomSnapshots(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	states := []domain.RoomState{domain.RoomAvailable, domain.RoomOccupied, domain.RoomBooked}

	for round := 0; round < 200; round++ {
		snap := domain.NewAvailableSnapshot()
		density := rng.Float64()
		for n := range snap {
			if rng.Float64() < density {
				snap[n] = states[1+rng.IntN(2)]
			}
		}
		before := snap.Clone()
		available := snap.Stats().Available

		for count := MinRoomsPerBooking; count <= MaxRoomsPerBooking; count++ {
			got, err := Allocate(snap, count)
			if err != nil {
				t.Fatalf("round %d count %d: unexpected error: %v", round, count, err)
			}

			if available >= count && len(got.Rooms) != count {
				t.Fatalf("round %d count %d: got %v with %d rooms available", round, count, got.Rooms, available)
			}
			if available < count && got.Found() {
				t.Fatalf("round %d count %d: got %v with only %d rooms available", round, count, got.Rooms, available)
			}

			seen := map[int]bool{}
			floors := map[int]bool{}
			for _, n := range got.Rooms {
				if snap[n] != domain.RoomAvailable {
					t.Fatalf("round %d: allocated room %d in state %q", round, n, snap[n])
				}
				if seen[n] {
					t.Fatalf("round %d: duplicate room %d in %v", round, n, got.Rooms)
				}
				seen[n] = true
				floors[domain.FloorOf(n)] = true
			}

			if got.TravelTime != TravelTime(got.Rooms) {
				t.Fatalf("round %d: travel time %d does not match rooms %v", round, got.TravelTime, got.Rooms)
			}

			if hasFloorWith(snap, count) && len(floors) != 1 {
				t.Fatalf("round %d count %d: %v spans floors although one floor suffices", round, count, got.Rooms)
			}

			again, _ := Allocate(snap, count)
			if !slices.Equal(again.Rooms, got.Rooms) || again.TravelTime != got.TravelTime {
				t.Fatalf("round %d count %d: not deterministic: %v vs %v", round, count, got, again)
			}
		}

		if !maps.Equal(before, snap) {
			t.Fatalf("round %d: snapshot modified", round)
		}
	}
}

func hasFloorWith(snap domain.Snapshot, count int) bool {
	for _, f := range domain.BuildTopology() {
		n := 0
		for _, r := range f.Rooms {
			if snap.IsAvailable(r.Number) {
				n++
			}
		}
		if n >= count {
			return true
		}
	}
	return false
}

func TestGreedyFallback(t *testing.T) {
	candidates := []floorRooms{
		{floor: 1, indices: []int{0, 1}},
		{floor: 3, indices: []int{2}},
	}

	got, ok := greedyFallback(candidates, 2)
	if !ok {
		t.Fatalf("expected a window")
	}
	if !slices.Equal(got.Rooms, []int{101, 102}) || got.TravelTime != 1 {
		t.Fatalf("got %+v, want [101 102] with travel time 1", got)
	}

	if _, ok := greedyFallback(candidates, 4); ok {
		t.Fatalf("expected no window for 4 rooms")
	}
}
