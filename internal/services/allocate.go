package services

import (
	"fmt"
	"hotel-booking-service/internal/domain"
	"math"
)

const (
	MinRoomsPerBooking = 1
	MaxRoomsPerBooking = 5
)

// Allocate proposes rooms for a booking of count rooms.
//
// Placement on a single floor always wins: the first floor (ascending) with
// enough available rooms returns its tightest window even when a cheaper
// cross-floor option exists. Otherwise runs of adjacent floors are searched for
// the minimum travel time, and as a last resort a greedy scan over all
// available rooms is used.
//
// The snapshot is only read. When nothing fits the result has an empty room
// list and zero travel time; callers must treat that as "no allocation".
func Allocate(snapshot domain.Snapshot, count int) (domain.Allocation, error) {
	if count < MinRoomsPerBooking || count > MaxRoomsPerBooking {
		return domain.Allocation{}, fmt.Errorf(
			"allocate: count %d outside %d..%d: %w",
			count, MinRoomsPerBooking, MaxRoomsPerBooking, ErrInvalidRequest,
		)
	}

	floors := availableByFloor(snapshot)

	for _, f := range floors {
		if len(f.indices) < count {
			continue
		}
		if window, _, ok := BestWindow(f.indices, count); ok {
			rooms := roomNumbers(f.floor, window)
			return domain.Allocation{Rooms: rooms, TravelTime: TravelTime(rooms)}, nil
		}
	}

	candidates := make([]floorRooms, 0, len(floors))
	for _, f := range floors {
		if len(f.indices) > 0 {
			candidates = append(candidates, f)
		}
	}

	if a, ok := crossFloorSearch(candidates, count); ok {
		return a, nil
	}

	if a, ok := greedyFallback(candidates, count); ok {
		return a, nil
	}

	return domain.Allocation{Rooms: []int{}, TravelTime: 0}, nil
}

// greedyFallback slides a window of count rooms over every available room in
// (floor, index) order and keeps the cheapest window, first on ties.
func greedyFallback(candidates []floorRooms, count int) (domain.Allocation, bool) {
	all := make([]int, 0, count*2)
	for _, f := range candidates {
		all = append(all, roomNumbers(f.floor, f.indices)...)
	}

	var best []int
	bestCost := math.MaxInt
	for i := 0; i+count <= len(all); i++ {
		window := all[i : i+count]
		if cost := TravelTime(window); cost < bestCost {
			bestCost = cost
			best = window
		}
	}

	if best == nil {
		return domain.Allocation{}, false
	}

	rooms := make([]int, count)
	copy(rooms, best)
	return domain.Allocation{Rooms: rooms, TravelTime: bestCost}, true
}
