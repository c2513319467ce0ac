package domain

import "time"

// Allocation is the engine's answer for one request: the chosen rooms and
// their travel time in abstract minutes.
// An empty room list means no allocation was possible.
type Allocation struct {
	Rooms      []int
	TravelTime int
}

func (a Allocation) Found() bool { return len(a.Rooms) > 0 }

// Represents a confirmed booking made through the shell.
type Booking struct {
	Rooms      []int
	TravelTime int
	BookedAt   time.Time
}

// Export payload describing every booked room at a point in time.
type BookingExport struct {
	Booked     []int
	Timestamp  time.Time
	TravelTime int
}
