package api

import (
	"hotel-booking-service/internal/api/handlers"
	"hotel-booking-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.HotelService) http.Handler {
	mux := http.NewServeMux()

	roomHandler := &handlers.RoomHandler{Service: svc}
	allocHandler := &handlers.AllocationHandler{Service: svc}
	bookingHandler := &handlers.BookingHandler{Service: svc}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/topology", handlers.Topology)
	mux.HandleFunc("/travel-time", handlers.TravelTime)

	mux.HandleFunc("/rooms", roomHandler.List)
	mux.HandleFunc("/rooms/{number}/toggle", roomHandler.Toggle)
	mux.HandleFunc("/rooms/random", roomHandler.Random)
	mux.HandleFunc("/rooms/reset", roomHandler.Reset)
	mux.HandleFunc("/history/undo", roomHandler.Undo)

	mux.HandleFunc("/allocations", allocHandler.Propose)

	mux.HandleFunc("/bookings", bookingHandler.Book)
	mux.HandleFunc("/bookings/last", bookingHandler.Last)
	mux.HandleFunc("/bookings/export", bookingHandler.Export)

	return requestIDMiddleware(loggingMiddleware(mux))
}
