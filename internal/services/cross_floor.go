package services

import (
	"hotel-booking-service/internal/domain"
	"math"
)

// Available room indices of one floor, ascending.
type floorRooms struct {
	floor   int
	indices []int
}

// availableByFloor walks the topology and collects the available indices of
// every floor, floors ascending. Rooms missing from the snapshot, or in any
// state other than available, are skipped.
func availableByFloor(snapshot domain.Snapshot) []floorRooms {
	topology := domain.BuildTopology()
	floors := make([]floorRooms, 0, len(topology))
	for _, f := range topology {
		fr := floorRooms{floor: f.Floor}
		for _, r := range f.Rooms {
			if snapshot.IsAvailable(r.Number) {
				fr.indices = append(fr.indices, r.Index)
			}
		}
		floors = append(floors, fr)
	}
	return floors
}

func roomNumbers(floor int, indices []int) []int {
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		out = append(out, domain.RoomNumber(floor, idx))
	}
	return out
}

// crossFloorSearch finds the cheapest way to draw count rooms from a run of
// adjacent candidate floors. Candidates must be non-empty floors in ascending
// order; adjacency is by position in that list, so fully taken floors in
// between are skipped over.
//
// Runs are tried by ascending start then ascending end, and compositions in
// depth-first order. Only a strictly cheaper candidate replaces the best one.
func crossFloorSearch(candidates []floorRooms, count int) (domain.Allocation, bool) {
	var best []int
	bestCost := math.MaxInt

	for start := 0; start < len(candidates); start++ {
		for end := start; end < len(candidates); end++ {
			run := candidates[start : end+1]

			bounds := make([]int, len(run))
			for i, f := range run {
				bounds[i] = len(f.indices)
			}

			it := newCompositionIter(bounds, count)
			for it.Next() {
				rooms, ok := materialize(run, it.Composition(), count)
				if !ok {
					continue
				}

				if cost := TravelTime(rooms); cost < bestCost {
					bestCost = cost
					best = rooms
				}
			}
		}
	}

	if best == nil {
		return domain.Allocation{}, false
	}
	return domain.Allocation{Rooms: best, TravelTime: bestCost}, true
}

// materialize turns a composition into concrete rooms using the tightest
// window on each floor.
func materialize(run []floorRooms, comp []int, count int) ([]int, bool) {
	rooms := make([]int, 0, count)
	for i, take := range comp {
		if take == 0 {
			continue
		}

		window, _, ok := BestWindow(run[i].indices, take)
		if !ok {
			return nil, false
		}
		rooms = append(rooms, roomNumbers(run[i].floor, window)...)
	}

	if len(rooms) != count {
		return nil, false
	}
	return rooms, true
}
