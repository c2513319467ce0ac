package services

// compositionIter enumerates every way to split total rooms across a run of
// floors, where position i takes between 0 and bounds[i] rooms.
//
// The sequence matches a depth-first walk that tries take = 0, 1, 2, ... at
// each position, i.e. ascending lexicographic order. It is driven by an
// explicit cursor instead of recursion and can be restarted with Reset.
type compositionIter struct {
	bounds []int
	total  int

	// suffix[i] is the most rooms positions i..n-1 can absorb.
	suffix  []int
	comp    []int
	started bool
	done    bool
}

func newCompositionIter(bounds []int, total int) *compositionIter {
	n := len(bounds)
	suffix := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + max(bounds[i], 0)
	}

	return &compositionIter{
		bounds: bounds,
		total:  total,
		suffix: suffix,
		comp:   make([]int, n),
	}
}

// Reset rewinds the iterator to before the first composition.
func (it *compositionIter) Reset() {
	it.started = false
	it.done = false
	clear(it.comp)
}

// Composition returns the current composition. The slice is reused by Next.
func (it *compositionIter) Composition() []int { return it.comp }

// Next advances to the following composition and reports whether one exists.
func (it *compositionIter) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
		if len(it.bounds) == 0 || it.total < 0 || it.total > it.suffix[0] {
			it.done = true
			return false
		}
		it.fill(0, it.total)
		return true
	}

	// Bump the rightmost position that can still take one more room while
	// leaving a feasible remainder, then refill everything after it.
	used := 0
	for _, c := range it.comp {
		used += c
	}
	for p := len(it.comp) - 2; p >= 0; p-- {
		used -= it.comp[p+1]
		remaining := it.total - used
		if it.comp[p] < it.bounds[p] && remaining > 0 {
			it.comp[p]++
			it.fill(p+1, remaining-1)
			return true
		}
	}

	it.done = true
	return false
}

// fill writes the lexicographically smallest completion of positions from..n-1
// summing to remaining. Callers guarantee remaining <= suffix[from].
func (it *compositionIter) fill(from, remaining int) {
	for i := from; i < len(it.comp); i++ {
		take := max(remaining-it.suffix[i+1], 0)
		it.comp[i] = take
		remaining -= take
	}
}
