package dto

type AllocationRequest struct {
	Count *int `json:"count"`
}

type AllocationResponse struct {
	Rooms      []int `json:"rooms"`
	TravelTime int   `json:"travel_time"`
	Found      bool  `json:"found"`
}

type TravelTimeRequest struct {
	Rooms []int `json:"rooms"`
}

type TravelTimeResponse struct {
	TravelTime int `json:"travel_time"`
}
