package domain

import "time"

// DateLayout is the wire and storage format for stay dates. Stays are
// whole days; time-of-day is never significant.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

type Reservation struct {
	ID        int64
	ClientID  int64
	Arrival   time.Time
	Departure time.Time
}

// ReservationDraft is the input to the reservation writer. All rows it
// produces are committed in one transaction or not at all.
type ReservationDraft struct {
	ClientID  int64
	Arrival   time.Time
	Departure time.Time
	RoomIDs   []int64

	// GuardAvailability rejects the draft with ErrRoomUnavailable when any
	// requested room has an overlapping assignment. Off by default: the
	// source system never enforced this at write time.
	GuardAvailability bool
}

// Evaluation is a rating plus comment tied to one reservation. Read-only.
type Evaluation struct {
	ID            int64
	ReservationID int64
	Rating        int
	Comment       *string
}

// Report row shapes consumed by presentation.

type ClientReservationCount struct {
	ClientID     int64
	FullName     string
	Reservations int
}

type RoomTypeCount struct {
	TypeID int64
	Label  string
	Rooms  int
}

// ReservationSummary joins a reservation with its client name and the city
// of a hotel containing one of its rooms. A reservation spanning rooms in
// several hotels appears once per hotel-room combination; the fan-out is
// intended display behavior.
type ReservationSummary struct {
	ReservationID int64
	ClientName    string
	HotelCity     string
	Arrival       time.Time
	Departure     time.Time
}
