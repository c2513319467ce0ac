package dto

import "time"

// BookingRequest confirms explicit rooms, or books the best allocation for
// count rooms when rooms is empty.
type BookingRequest struct {
	Rooms []int `json:"rooms"`
	Count *int  `json:"count"`
}

type BookingResponse struct {
	Rooms      []int     `json:"rooms"`
	TravelTime int       `json:"travel_time"`
	BookedAt   time.Time `json:"booked_at"`
}

type ExportResponse struct {
	Booked     []int     `json:"booked"`
	Timestamp  time.Time `json:"timestamp"`
	TravelTime int       `json:"travel_time"`
}

type UndoResponse struct {
	Kind  string `json:"kind"`
	Rooms []int  `json:"rooms"`
}
