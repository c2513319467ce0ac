package services

import (
	"errors"
	"hotel-booking-service/internal/domain"
)

var (
	// ErrInvalidRequest marks a booking size outside the supported range.
	ErrInvalidRequest = errors.New("invalid request")

	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomBooked         = errors.New("room is booked")
	ErrRoomUnavailable    = domain.ErrRoomUnavailable
	ErrNothingToUndo      = errors.New("nothing to undo")
	ErrInvalidProbability = errors.New("probability must be between 0 and 1")
)
