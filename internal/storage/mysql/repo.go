package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hoteldb/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// storeErr tags a driver/connection failure with the domain sentinel so
// callers can errors.Is(err, domain.ErrStoreUnavailable).
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

func dateArg(t time.Time) string { return t.Format(domain.DateLayout) }

// placeholders returns "(?,?,...)" with n markers, for IN clauses and the
// like. n must be > 0.
func placeholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?,", n), ",") + ")"
}

func (r *Repo) CreateClient(ctx context.Context, c domain.Client) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertClientSQL,
		c.FullName, c.Address, c.City, c.PostalCode, c.Email, c.Phone)
	if err != nil {
		return 0, storeErr("insert client", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("insert client", err)
	}
	return id, nil
}

// CreateReservation inserts the reservation row and one assignment row per
// room inside a single transaction. A failure anywhere rolls everything
// back; no orphaned reservation can persist.
func (r *Repo) CreateReservation(ctx context.Context, d domain.ReservationDraft) (int64, error) {
	if len(d.RoomIDs) == 0 {
		return 0, domain.ErrNoRooms
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("begin reservation tx", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op once committed

	if d.GuardAvailability {
		if err := guardRooms(ctx, tx, d); err != nil {
			return 0, err
		}
	}

	res, err := tx.ExecContext(ctx, insertReservationSQL,
		dateArg(d.Arrival), dateArg(d.Departure), d.ClientID)
	if err != nil {
		return 0, storeErr("insert reservation", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("insert reservation", err)
	}

	values := make([]string, 0, len(d.RoomIDs))
	args := make([]any, 0, len(d.RoomIDs)*2)
	for _, roomID := range d.RoomIDs {
		values = append(values, "(?,?)")
		args = append(args, id, roomID)
	}
	sqlStr := insertAssignmentsPrefix + strings.Join(values, ",")
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return 0, storeErr("insert room assignments", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("commit reservation", err)
	}
	return id, nil
}

// guardRooms rejects the draft when any requested room already has an
// overlapping assignment. It first locks the Chambre rows so two guarded
// writers racing for the same room queue on the row locks; the second one
// runs its conflict count after the first commits and sees the overlap.
// Counting alone would not serialize: FOR UPDATE locks only rows that
// already exist, and two writers each counting zero conflicts would both
// commit.
func guardRooms(ctx context.Context, tx *sql.Tx, d domain.ReservationDraft) error {
	lock := guardLockRoomsPrefix + placeholders(len(d.RoomIDs)) + guardLockRoomsSuffix
	lockArgs := make([]any, 0, len(d.RoomIDs))
	for _, roomID := range d.RoomIDs {
		lockArgs = append(lockArgs, roomID)
	}
	rows, err := tx.QueryContext(ctx, lock, lockArgs...)
	if err != nil {
		return storeErr("guard room locks", err)
	}
	if err := rows.Close(); err != nil {
		return storeErr("guard room locks", err)
	}

	q := guardOverlapPrefix + placeholders(len(d.RoomIDs)) + guardOverlapSuffix
	args := make([]any, 0, len(d.RoomIDs)+2)
	args = append(args, dateArg(d.Arrival), dateArg(d.Departure))
	for _, roomID := range d.RoomIDs {
		args = append(args, roomID)
	}
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return storeErr("guard overlap check", err)
	}
	if n > 0 {
		return domain.ErrRoomUnavailable
	}
	return nil
}

func (r *Repo) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	var c domain.Client
	err := r.db.QueryRowContext(ctx, getClientSQL, id).Scan(
		&c.ID, &c.FullName, &c.Address, &c.City, &c.PostalCode, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrNotFound
		}
		return domain.Client{}, storeErr("get client", err)
	}
	return c, nil
}

func (r *Repo) RoomsByID(ctx context.Context, ids []int64) ([]domain.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := roomsByIDPrefix + placeholders(len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storeErr("rooms by id", err)
	}
	defer rows.Close()
	return scanRooms(rows, "rooms by id")
}

// FindAvailableRooms returns every room with zero assignments overlapping
// [start,end]. Read-only; range validation happens in the app layer before
// this is called.
func (r *Repo) FindAvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, availableRoomsSQL, dateArg(start), dateArg(end))
	if err != nil {
		return nil, storeErr("available rooms", err)
	}
	defer rows.Close()
	return scanRooms(rows, "available rooms")
}

func scanRooms(rows *sql.Rows, op string) ([]domain.Room, error) {
	var out []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Floor, &rm.Smoking, &rm.HotelID, &rm.TypeID); err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

func (r *Repo) ListClientsByCity(ctx context.Context, city string) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, clientsByCitySQL, city)
	if err != nil {
		return nil, storeErr("clients by city", err)
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FullName, &c.Address, &c.City, &c.PostalCode, &c.Email, &c.Phone); err != nil {
			return nil, storeErr("clients by city", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("clients by city", err)
	}
	return out, nil
}

func (r *Repo) CountReservationsPerClient(ctx context.Context) ([]domain.ClientReservationCount, error) {
	rows, err := r.db.QueryContext(ctx, reservationsPerClientSQL)
	if err != nil {
		return nil, storeErr("reservations per client", err)
	}
	defer rows.Close()

	var out []domain.ClientReservationCount
	for rows.Next() {
		var c domain.ClientReservationCount
		if err := rows.Scan(&c.ClientID, &c.FullName, &c.Reservations); err != nil {
			return nil, storeErr("reservations per client", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("reservations per client", err)
	}
	return out, nil
}

func (r *Repo) CountRoomsPerType(ctx context.Context) ([]domain.RoomTypeCount, error) {
	rows, err := r.db.QueryContext(ctx, roomsPerTypeSQL)
	if err != nil {
		return nil, storeErr("rooms per type", err)
	}
	defer rows.Close()

	var out []domain.RoomTypeCount
	for rows.Next() {
		var c domain.RoomTypeCount
		if err := rows.Scan(&c.TypeID, &c.Label, &c.Rooms); err != nil {
			return nil, storeErr("rooms per type", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("rooms per type", err)
	}
	return out, nil
}

func (r *Repo) ListReservationsWithClientAndCity(ctx context.Context) ([]domain.ReservationSummary, error) {
	rows, err := r.db.QueryContext(ctx, reservationSummariesSQL)
	if err != nil {
		return nil, storeErr("reservation summaries", err)
	}
	defer rows.Close()

	var out []domain.ReservationSummary
	for rows.Next() {
		var s domain.ReservationSummary
		if err := rows.Scan(&s.ReservationID, &s.ClientName, &s.HotelCity, &s.Arrival, &s.Departure); err != nil {
			return nil, storeErr("reservation summaries", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("reservation summaries", err)
	}
	return out, nil
}

func (r *Repo) ListEvaluations(ctx context.Context, reservationID int64) ([]domain.Evaluation, error) {
	rows, err := r.db.QueryContext(ctx, evaluationsSQL, reservationID)
	if err != nil {
		return nil, storeErr("evaluations", err)
	}
	defer rows.Close()

	var out []domain.Evaluation
	for rows.Next() {
		var e domain.Evaluation
		var comment sql.NullString
		if err := rows.Scan(&e.ID, &e.ReservationID, &e.Rating, &comment); err != nil {
			return nil, storeErr("evaluations", err)
		}
		if comment.Valid {
			c := comment.String
			e.Comment = &c
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("evaluations", err)
	}
	return out, nil
}
