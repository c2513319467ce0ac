package services

import "hotel-booking-service/internal/domain"

// TravelTime scores a set of rooms in abstract minutes.
//
// Each floor crossed between the lowest and highest floor costs 2 minutes, and
// every floor touched adds the span between its outermost rooms. Fewer than two
// rooms cost nothing.
func TravelTime(rooms []int) int {
	if len(rooms) <= 1 {
		return 0
	}

	type span struct{ lo, hi int }
	byFloor := make(map[int]span, 2)

	minFloor, maxFloor := domain.FloorOf(rooms[0]), domain.FloorOf(rooms[0])
	for _, r := range rooms {
		f := domain.FloorOf(r)
		idx := domain.IndexOf(r)

		minFloor = min(minFloor, f)
		maxFloor = max(maxFloor, f)

		s, ok := byFloor[f]
		if !ok {
			byFloor[f] = span{lo: idx, hi: idx}
			continue
		}
		byFloor[f] = span{lo: min(s.lo, idx), hi: max(s.hi, idx)}
	}

	vertical := (maxFloor - minFloor) * 2
	horizontal := 0
	for _, s := range byFloor {
		horizontal += s.hi - s.lo
	}

	return vertical + horizontal
}
