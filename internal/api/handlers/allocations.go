package handlers

import (
	"hotel-booking-service/internal/api/dto"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/services"
	"net/http"
)

type AllocationHandler struct {
	Service *services.HotelService
}

// Propose returns the best rooms for a booking without reserving them.
func (h *AllocationHandler) Propose(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AllocationRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	count := services.MinRoomsPerBooking
	if req.Count != nil {
		count = *req.Count
	}

	alloc, err := h.Service.Propose(r.Context(), count)
	if err != nil {
		writeServiceError(w, r, "propose allocation", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AllocationResponse{
		Rooms:      alloc.Rooms,
		TravelTime: alloc.TravelTime,
		Found:      alloc.Found(),
	})
}

// TravelTime scores an arbitrary set of rooms.
func TravelTime(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TravelTimeRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	for _, n := range req.Rooms {
		if !domain.IsValidRoom(n) {
			writeError(w, r, http.StatusBadRequest, "unknown room number")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, dto.TravelTimeResponse{TravelTime: services.TravelTime(req.Rooms)})
}
