package domain

const (
	// TopFloor is the highest floor in the hotel.
	TopFloor = 10
	// RoomsPerFloor is the room count of floors 1..9.
	RoomsPerFloor = 10
	// TopFloorRooms is the room count of the top floor.
	TopFloorRooms = 7
)

// Represents a single bookable room.
// Index is the zero-based position within the floor's room ordering; it is
// assigned when the topology is built and never changes.
type Room struct {
	Number int
	Floor  int
	Index  int
}

// Represents one vertical level of the hotel and its ordered rooms.
type Floor struct {
	Floor int
	Rooms []Room
}

// BuildTopology returns the static hotel layout, floors in ascending order.
func BuildTopology() []Floor {
	floors := make([]Floor, 0, TopFloor)
	for f := 1; f <= TopFloor; f++ {
		n := RoomCount(f)
		rooms := make([]Room, 0, n)
		for i := 0; i < n; i++ {
			rooms = append(rooms, Room{Number: RoomNumber(f, i), Floor: f, Index: i})
		}
		floors = append(floors, Floor{Floor: f, Rooms: rooms})
	}
	return floors
}

// RoomCount returns the number of rooms on a floor, or 0 for floors outside the hotel.
func RoomCount(floor int) int {
	switch {
	case floor >= 1 && floor < TopFloor:
		return RoomsPerFloor
	case floor == TopFloor:
		return TopFloorRooms
	default:
		return 0
	}
}

// RoomNumber is the generation rule used by BuildTopology.
func RoomNumber(floor, index int) int {
	if floor == TopFloor {
		return 1000 + index + 1
	}
	return floor*100 + index + 1
}

// FloorOf derives the floor from a room number.
func FloorOf(room int) int {
	if room >= 1001 {
		return TopFloor
	}
	return room / 100
}

// IndexOf derives the position of a room within its floor.
func IndexOf(room int) int {
	if room >= 1001 {
		return room - 1001
	}
	return room%100 - 1
}

// IsValidRoom reports whether the number belongs to a room produced by BuildTopology.
func IsValidRoom(room int) bool {
	f := FloorOf(room)
	i := IndexOf(room)
	return i >= 0 && i < RoomCount(f) && RoomNumber(f, i) == room
}

// AllRoomNumbers lists every room in (floor, index) order.
func AllRoomNumbers() []int {
	out := make([]int, 0, (TopFloor-1)*RoomsPerFloor+TopFloorRooms)
	for _, f := range BuildTopology() {
		for _, r := range f.Rooms {
			out = append(out, r.Number)
		}
	}
	return out
}
