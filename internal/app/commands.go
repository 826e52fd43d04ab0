package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hoteldb/internal/adapters/observability"
	"hoteldb/internal/domain"
)

type BookingService struct {
	store domain.Store
	cache domain.Cache

	// guard enables the availability precondition on reservation writes.
	// The default (off) matches the historical behavior: overlapping
	// bookings are accepted and only surface through availability reads.
	guard bool
}

func NewBookingService(s domain.Store, c domain.Cache, guard bool) *BookingService {
	return &BookingService{store: s, cache: c, guard: guard}
}

func (s *BookingService) CreateClient(ctx context.Context, c domain.Client) (int64, error) {
	if strings.TrimSpace(c.FullName) == "" {
		return 0, domain.ErrInvalidClient
	}
	id, err := s.store.CreateClient(ctx, c)
	if err != nil {
		observability.ObserveWrite("client", "error")
		return 0, err
	}
	observability.ObserveWrite("client", "ok")
	// A new client shows up (with zero reservations) in the per-client report.
	_ = s.cache.Del(ctx, keyReportPerClient)
	return id, nil
}

// CreateReservation validates its inputs against the store, then writes the
// reservation and its room assignments in one transaction. On any failure
// nothing is committed.
func (s *BookingService) CreateReservation(ctx context.Context, clientID int64, arrival, departure time.Time, roomIDs []int64) (int64, error) {
	if arrival.After(departure) {
		return 0, domain.ErrInvalidRange
	}
	roomIDs = dedupe(roomIDs)
	if len(roomIDs) == 0 {
		return 0, domain.ErrNoRooms
	}

	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		return 0, fmt.Errorf("client %d: %w", clientID, err)
	}
	rooms, err := s.store.RoomsByID(ctx, roomIDs)
	if err != nil {
		return 0, err
	}
	if len(rooms) != len(roomIDs) {
		return 0, fmt.Errorf("unknown room id: %w", domain.ErrNotFound)
	}

	id, err := s.store.CreateReservation(ctx, domain.ReservationDraft{
		ClientID:          clientID,
		Arrival:           arrival,
		Departure:         departure,
		RoomIDs:           roomIDs,
		GuardAvailability: s.guard,
	})
	if err != nil {
		observability.ObserveWrite("reservation", "error")
		return 0, err
	}
	observability.ObserveWrite("reservation", "ok")

	_ = s.cache.Del(ctx, keyReportReservations)
	_ = s.cache.Del(ctx, keyReportPerClient)
	return id, nil
}

// dedupe keeps first occurrences; room ids form a set and duplicates would
// trip the assignment table's primary key.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
