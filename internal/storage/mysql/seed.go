package mysql

import (
	"context"

	"hoteldb/internal/domain"
)

// Catalog writes, used by cmd/seeder and integration tests only. Hotel,
// room-type, room and amenity rows are seed data and never change at
// runtime, so these stay off the domain.Store port.

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertHotelSQL, h.City, h.Country, h.PostalCode)
	if err != nil {
		return 0, storeErr("insert hotel", err)
	}
	return res.LastInsertId()
}

func (r *Repo) CreateRoomType(ctx context.Context, t domain.RoomType) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRoomTypeSQL, t.Label, t.NightlyRate)
	if err != nil {
		return 0, storeErr("insert room type", err)
	}
	return res.LastInsertId()
}

func (r *Repo) CreateRoom(ctx context.Context, rm domain.Room) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRoomSQL, rm.Floor, rm.Smoking, rm.HotelID, rm.TypeID)
	if err != nil {
		return 0, storeErr("insert room", err)
	}
	return res.LastInsertId()
}

func (r *Repo) CreateAmenity(ctx context.Context, a domain.Amenity) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertAmenitySQL, a.Label, a.Price)
	if err != nil {
		return 0, storeErr("insert amenity", err)
	}
	return res.LastInsertId()
}

func (r *Repo) LinkHotelAmenity(ctx context.Context, hotelID, amenityID int64) error {
	if _, err := r.db.ExecContext(ctx, linkHotelAmenitySQL, hotelID, amenityID); err != nil {
		return storeErr("link hotel amenity", err)
	}
	return nil
}

func (r *Repo) CreateEvaluation(ctx context.Context, e domain.Evaluation) (int64, error) {
	var comment any
	if e.Comment != nil {
		comment = *e.Comment
	}
	res, err := r.db.ExecContext(ctx, insertEvaluationSQL, e.Rating, comment, e.ReservationID)
	if err != nil {
		return 0, storeErr("insert evaluation", err)
	}
	return res.LastInsertId()
}
