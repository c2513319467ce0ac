package dto

type RoomResponse struct {
	Number int    `json:"number"`
	Floor  int    `json:"floor"`
	Index  int    `json:"index"`
	State  string `json:"state"`
}

type StatsResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Booked    int `json:"booked"`
}

type ListRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Stats StatsResponse  `json:"stats"`
}

type ToggleRoomResponse struct {
	Number int    `json:"number"`
	State  string `json:"state"`
}

type RandomOccupancyRequest struct {
	Probability *float64 `json:"probability"`
}

type RandomOccupancyResponse struct {
	Occupied []int `json:"occupied"`
}

type TopologyRoomResponse struct {
	Number int `json:"number"`
	Index  int `json:"index"`
}

type FloorResponse struct {
	Floor int                    `json:"floor"`
	Rooms []TopologyRoomResponse `json:"rooms"`
}

type TopologyResponse struct {
	Floors []FloorResponse `json:"floors"`
}
