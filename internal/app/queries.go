package app

import (
	"context"
	"time"

	"hoteldb/internal/domain"
)

// Cache keys for the parameterless aggregates. Date- and city-parameterized
// reads are unbounded key spaces and go straight to the store.
const (
	keyReportReservations = "report:reservations"
	keyReportPerClient    = "report:reservations-per-client"
	keyReportRoomsPerType = "report:rooms-per-type"
)

type QueryService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(s domain.Store, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: s, cache: c, cacheTTL: ttl}
}

// AvailableRooms returns every room with no assignment overlapping
// [start,end], boundaries inclusive. A reversed range fails before any
// store round-trip.
func (s *QueryService) AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}
	return s.store.FindAvailableRooms(ctx, start, end)
}

func (s *QueryService) ClientsByCity(ctx context.Context, city string) ([]domain.Client, error) {
	return s.store.ListClientsByCity(ctx, city)
}

func (s *QueryService) ReservationsPerClient(ctx context.Context) ([]domain.ClientReservationCount, error) {
	var out []domain.ClientReservationCount
	if ok, _ := s.cache.Get(ctx, keyReportPerClient, &out); ok {
		return out, nil
	}
	out, err := s.store.CountReservationsPerClient(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, keyReportPerClient, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) RoomsPerType(ctx context.Context) ([]domain.RoomTypeCount, error) {
	var out []domain.RoomTypeCount
	if ok, _ := s.cache.Get(ctx, keyReportRoomsPerType, &out); ok {
		return out, nil
	}
	out, err := s.store.CountRoomsPerType(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, keyReportRoomsPerType, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) ReservationSummaries(ctx context.Context) ([]domain.ReservationSummary, error) {
	var out []domain.ReservationSummary
	if ok, _ := s.cache.Get(ctx, keyReportReservations, &out); ok {
		return out, nil
	}
	out, err := s.store.ListReservationsWithClientAndCity(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, keyReportReservations, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) Evaluations(ctx context.Context, reservationID int64) ([]domain.Evaluation, error) {
	return s.store.ListEvaluations(ctx, reservationID)
}
