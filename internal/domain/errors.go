package domain

import "errors"

// Failure taxonomy surfaced to callers. Storage adapters map their native
// failures onto these sentinels so callers can branch with errors.Is.
var (
	// ErrInvalidRange is returned when a stay interval has its arrival
	// after its departure.
	ErrInvalidRange = errors.New("arrival date is after departure date")

	// ErrNotFound is returned when a referenced client, room or
	// reservation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoRooms is returned when a reservation is requested with an
	// empty room set.
	ErrNoRooms = errors.New("reservation needs at least one room")

	// ErrInvalidClient is returned when a client record is missing its
	// full name.
	ErrInvalidClient = errors.New("client full name required")

	// ErrRoomUnavailable is returned by the guarded booking mode when a
	// requested room already has an overlapping assignment.
	ErrRoomUnavailable = errors.New("room already booked for this interval")

	// ErrStoreUnavailable wraps connection or execution failures of the
	// underlying store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
