package handlers

import (
	"hotel-booking-service/internal/api/dto"
	"hotel-booking-service/internal/domain"
	"hotel-booking-service/internal/services"
	"net/http"
)

type BookingHandler struct {
	Service *services.HotelService
}

// Book confirms the requested rooms, or books the best allocation for count
// rooms when no rooms are given.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BookingRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	var (
		b   domain.Booking
		err error
	)
	if len(req.Rooms) > 0 {
		b, err = h.Service.Confirm(r.Context(), req.Rooms)
	} else {
		count := services.MinRoomsPerBooking
		if req.Count != nil {
			count = *req.Count
		}

		var found bool
		b, found, err = h.Service.BookBest(r.Context(), count)
		if err == nil && !found {
			writeError(w, r, http.StatusConflict, "unable to find suitable rooms for booking")
			return
		}
	}
	if err != nil {
		writeServiceError(w, r, "book rooms", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) Last(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	b, ok := h.Service.LastBooking()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no booking yet")
		return
	}

	writeJSON(w, r, http.StatusOK, toBookingResponse(b))
}

// Export returns every booked room as a downloadable JSON document.
func (h *BookingHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	exp, err := h.Service.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, "export bookings", err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="booking.json"`)
	writeJSON(w, r, http.StatusOK, dto.ExportResponse{
		Booked:     exp.Booked,
		Timestamp:  exp.Timestamp,
		TravelTime: exp.TravelTime,
	})
}

func toBookingResponse(b domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		Rooms:      b.Rooms,
		TravelTime: b.TravelTime,
		BookedAt:   b.BookedAt,
	}
}
