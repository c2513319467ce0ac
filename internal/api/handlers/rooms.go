package handlers

import (
	"hotel-booking-service/internal/api/dto"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/services"
	"net/http"
	"strconv"
)

// RoomHandler exposes room state and the manual state changes of the shell.
type RoomHandler struct {
	Service *services.HotelService
}

// Topology lists floors and their rooms. It does not depend on room state.
func Topology(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	floors := domain.BuildTopology()
	res := dto.TopologyResponse{Floors: make([]dto.FloorResponse, 0, len(floors))}
	for _, f := range floors {
		rooms := make([]dto.TopologyRoomResponse, 0, len(f.Rooms))
		for _, rm := range f.Rooms {
			rooms = append(rooms, dto.TopologyRoomResponse{Number: rm.Number, Index: rm.Index})
		}
		res.Floors = append(res.Floors, dto.FloorResponse{Floor: f.Floor, Rooms: rooms})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	snap, stats, err := h.Service.Rooms(r.Context())
	if err != nil {
		writeServiceError(w, r, "list rooms", err)
		return
	}

	res := dto.ListRoomsResponse{
		Rooms: make([]dto.RoomResponse, 0, len(snap)),
		Stats: dto.StatsResponse{
			Total:     stats.Total,
			Available: stats.Available,
			Occupied:  stats.Occupied,
			Booked:    stats.Booked,
		},
	}
	for _, n := range domain.AllRoomNumbers() {
		st, ok := snap[n]
		if !ok {
			continue
		}
		res.Rooms = append(res.Rooms, dto.RoomResponse{
			Number: n,
			Floor:  domain.FloorOf(n),
			Index:  domain.IndexOf(n),
			State:  string(st),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RoomHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "room number must be an integer")
		return
	}

	st, err := h.Service.ToggleRoom(r.Context(), number)
	if err != nil {
		writeServiceError(w, r, "toggle room", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToggleRoomResponse{Number: number, State: string(st)})
}

func (h *RoomHandler) Random(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RandomOccupancyRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	p := services.DefaultOccupancyProbability
	if req.Probability != nil {
		p = *req.Probability
	}

	occupied, err := h.Service.RandomOccupancy(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, "random occupancy", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RandomOccupancyResponse{Occupied: occupied})
}

func (h *RoomHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	if err := h.Service.Reset(r.Context()); err != nil {
		writeServiceError(w, r, "reset rooms", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Undo reverts the most recent toggle, random occupancy or booking.
func (h *RoomHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	entry, err := h.Service.Undo(r.Context())
	if err != nil {
		writeServiceError(w, r, "undo", err)
		return
	}

	rooms := entry.Rooms
	if rooms == nil {
		rooms = []int{}
	}
	writeJSON(w, r, http.StatusOK, dto.UndoResponse{Kind: string(entry.Kind), Rooms: rooms})
}
