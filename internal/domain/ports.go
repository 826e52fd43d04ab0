package domain

import (
	"context"
	"time"
)

type Store interface {
	// Write paths
	CreateClient(ctx context.Context, c Client) (int64, error)
	CreateReservation(ctx context.Context, d ReservationDraft) (int64, error)

	// Read paths
	GetClient(ctx context.Context, id int64) (Client, error)
	RoomsByID(ctx context.Context, ids []int64) ([]Room, error)
	FindAvailableRooms(ctx context.Context, start, end time.Time) ([]Room, error)
	ListClientsByCity(ctx context.Context, city string) ([]Client, error)
	CountReservationsPerClient(ctx context.Context) ([]ClientReservationCount, error)
	CountRoomsPerType(ctx context.Context) ([]RoomTypeCount, error)
	ListReservationsWithClientAndCity(ctx context.Context) ([]ReservationSummary, error)
	ListEvaluations(ctx context.Context, reservationID int64) ([]Evaluation, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
