package services

import "math"

// BestWindow picks count consecutive entries of a strictly increasing index
// list with the smallest distance between first and last entry.
//
// Windows are scanned left to right and only a strictly smaller span replaces
// the current best, so the earliest window wins ties. ok is false when the list
// is shorter than count.
func BestWindow(sortedIndices []int, count int) (window []int, span int, ok bool) {
	if count < 1 || len(sortedIndices) < count {
		return nil, 0, false
	}

	best := -1
	bestSpan := math.MaxInt
	for i := 0; i+count <= len(sortedIndices); i++ {
		s := sortedIndices[i+count-1] - sortedIndices[i]
		if s < bestSpan {
			bestSpan = s
			best = i
		}
	}

	window = make([]int, count)
	copy(window, sortedIndices[best:best+count])
	return window, bestSpan, true
}
