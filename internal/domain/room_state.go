package domain

import (
	"errors"
	"fmt"
)

// Occupancy state of a room as tracked by the booking shell.
type RoomState string

const (
	RoomAvailable RoomState = "available"
	RoomOccupied  RoomState = "occupied"
	RoomBooked    RoomState = "booked"
)

// ErrRoomUnavailable is returned by room stores asked to book a room that is
// no longer available.
var ErrRoomUnavailable = errors.New("room is not available")

func ParseRoomState(s string) (RoomState, error) {
	switch st := RoomState(s); st {
	case RoomAvailable, RoomOccupied, RoomBooked:
		return st, nil
	default:
		return "", fmt.Errorf("parse room state: unknown state %q", s)
	}
}

// Snapshot maps room numbers to their state at a point in time.
// The allocation engine only reads it.
type Snapshot map[int]RoomState

// NewAvailableSnapshot returns a snapshot with every room available.
func NewAvailableSnapshot() Snapshot {
	s := make(Snapshot, TopFloor*RoomsPerFloor)
	for _, n := range AllRoomNumbers() {
		s[n] = RoomAvailable
	}
	return s
}

func (s Snapshot) IsAvailable(room int) bool {
	return s[room] == RoomAvailable
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Rooms counted by state.
type Stats struct {
	Total     int
	Available int
	Occupied  int
	Booked    int
}

func (s Snapshot) Stats() Stats {
	st := Stats{Total: len(s)}
	for _, v := range s {
		switch v {
		case RoomOccupied:
			st.Occupied++
		case RoomBooked:
			st.Booked++
		}
	}
	st.Available = st.Total - st.Occupied - st.Booked
	return st
}
