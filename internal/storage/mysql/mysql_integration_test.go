//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hoteldb/internal/domain"
	mysqlrepo "hoteldb/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hoteldb",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hoteldb?parseTime=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func roomSet(rooms []domain.Room) map[int64]bool {
	out := make(map[int64]bool, len(rooms))
	for _, rm := range rooms {
		out[rm.ID] = true
	}
	return out
}

func TestRepo_MySQL(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Arrange: two hotels, one type, three rooms, one client
	parisID, err := repo.CreateHotel(ctx, domain.Hotel{City: "Paris", Country: "France", PostalCode: "75001"})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	lyonID, err := repo.CreateHotel(ctx, domain.Hotel{City: "Lyon", Country: "France", PostalCode: "69002"})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	doubleID, err := repo.CreateRoomType(ctx, domain.RoomType{Label: "Double", NightlyRate: 120})
	if err != nil {
		t.Fatalf("CreateRoomType: %v", err)
	}

	roomX, err := repo.CreateRoom(ctx, domain.Room{Floor: 1, HotelID: parisID, TypeID: doubleID})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	roomY, err := repo.CreateRoom(ctx, domain.Room{Floor: 2, HotelID: parisID, TypeID: doubleID})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	roomZ, err := repo.CreateRoom(ctx, domain.Room{Floor: 1, HotelID: lyonID, TypeID: doubleID})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	clientID, err := repo.CreateClient(ctx, domain.Client{
		FullName: "Jean Dupont", Address: "12 rue de Rivoli", City: "Paris",
		PostalCode: "75004", Email: "jean@example.fr", Phone: "+33 6 11 22 33 44",
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	// Two disjoint stays on room X
	if _, err := repo.CreateReservation(ctx, domain.ReservationDraft{
		ClientID: clientID, Arrival: mustDate(t, "2025-06-01"), Departure: mustDate(t, "2025-06-05"),
		RoomIDs: []int64{roomX},
	}); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if _, err := repo.CreateReservation(ctx, domain.ReservationDraft{
		ClientID: clientID, Arrival: mustDate(t, "2025-06-10"), Departure: mustDate(t, "2025-06-15"),
		RoomIDs: []int64{roomX},
	}); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	t.Run("gap between stays is available", func(t *testing.T) {
		rooms, err := repo.FindAvailableRooms(ctx, mustDate(t, "2025-06-06"), mustDate(t, "2025-06-09"))
		if err != nil {
			t.Fatalf("FindAvailableRooms: %v", err)
		}
		got := roomSet(rooms)
		if !got[roomX] || !got[roomY] || !got[roomZ] {
			t.Fatalf("expected all rooms available in the gap, got %v", got)
		}
		if len(rooms) != 3 {
			t.Fatalf("expected 3 distinct rooms, got %d", len(rooms))
		}
	})

	t.Run("touching departure blocks the room", func(t *testing.T) {
		rooms, err := repo.FindAvailableRooms(ctx, mustDate(t, "2025-06-05"), mustDate(t, "2025-06-06"))
		if err != nil {
			t.Fatalf("FindAvailableRooms: %v", err)
		}
		got := roomSet(rooms)
		if got[roomX] {
			t.Fatalf("room X should be blocked by departure on 06-05")
		}
		if !got[roomY] || !got[roomZ] {
			t.Fatalf("rooms Y/Z should be free, got %v", got)
		}
	})

	t.Run("touching arrival blocks the room", func(t *testing.T) {
		rooms, err := repo.FindAvailableRooms(ctx, mustDate(t, "2025-05-30"), mustDate(t, "2025-06-01"))
		if err != nil {
			t.Fatalf("FindAvailableRooms: %v", err)
		}
		if roomSet(rooms)[roomX] {
			t.Fatalf("room X should be blocked by arrival on 06-01")
		}
	})

	t.Run("other stays on the room do not mask an overlap", func(t *testing.T) {
		// room X also holds 06-01..06-05, which misses this range entirely;
		// the 06-10..06-15 stay must still exclude it
		rooms, err := repo.FindAvailableRooms(ctx, mustDate(t, "2025-06-12"), mustDate(t, "2025-06-20"))
		if err != nil {
			t.Fatalf("FindAvailableRooms: %v", err)
		}
		got := roomSet(rooms)
		if got[roomX] {
			t.Fatalf("room X overlaps 06-10..06-15 and must not be available")
		}
		if !got[roomY] || !got[roomZ] {
			t.Fatalf("rooms Y/Z should be free, got %v", got)
		}
	})

	t.Run("multi-room reservation writes one row per room", func(t *testing.T) {
		resID, err := repo.CreateReservation(ctx, domain.ReservationDraft{
			ClientID: clientID, Arrival: mustDate(t, "2025-07-01"), Departure: mustDate(t, "2025-07-03"),
			RoomIDs: []int64{roomY, roomZ},
		})
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
		var nRes, nAssign int
		if err := db.QueryRow(`SELECT COUNT(*) FROM Reservation WHERE id_reservation = ?`, resID).Scan(&nRes); err != nil {
			t.Fatal(err)
		}
		if err := db.QueryRow(`SELECT COUNT(*) FROM Reservation_Chambre WHERE id_reservation = ?`, resID).Scan(&nAssign); err != nil {
			t.Fatal(err)
		}
		if nRes != 1 || nAssign != 2 {
			t.Fatalf("got %d reservation rows, %d assignments; want 1 and 2", nRes, nAssign)
		}
	})

	t.Run("failed assignment insert rolls back the reservation", func(t *testing.T) {
		var before int
		if err := db.QueryRow(`SELECT COUNT(*) FROM Reservation`).Scan(&before); err != nil {
			t.Fatal(err)
		}
		// second room id violates the FK, so the assignment insert fails
		// after the reservation row was written inside the tx
		_, err := repo.CreateReservation(ctx, domain.ReservationDraft{
			ClientID: clientID, Arrival: mustDate(t, "2025-08-01"), Departure: mustDate(t, "2025-08-03"),
			RoomIDs: []int64{roomY, 99999},
		})
		if err == nil {
			t.Fatalf("expected FK failure")
		}
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable wrapping, got %v", err)
		}
		var after int
		if err := db.QueryRow(`SELECT COUNT(*) FROM Reservation`).Scan(&after); err != nil {
			t.Fatal(err)
		}
		if after != before {
			t.Fatalf("orphaned reservation persisted: before=%d after=%d", before, after)
		}
	})

	t.Run("guard mode rejects overlapping booking", func(t *testing.T) {
		_, err := repo.CreateReservation(ctx, domain.ReservationDraft{
			ClientID: clientID, Arrival: mustDate(t, "2025-06-03"), Departure: mustDate(t, "2025-06-04"),
			RoomIDs: []int64{roomX}, GuardAvailability: true,
		})
		if !errors.Is(err, domain.ErrRoomUnavailable) {
			t.Fatalf("expected ErrRoomUnavailable, got %v", err)
		}
	})

	t.Run("concurrent guarded writers settle to one winner", func(t *testing.T) {
		errs := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := repo.CreateReservation(ctx, domain.ReservationDraft{
					ClientID: clientID, Arrival: mustDate(t, "2025-09-01"), Departure: mustDate(t, "2025-09-03"),
					RoomIDs: []int64{roomZ}, GuardAvailability: true,
				})
				errs <- err
			}()
		}
		var committed, rejected int
		for i := 0; i < 2; i++ {
			switch err := <-errs; {
			case err == nil:
				committed++
			case errors.Is(err, domain.ErrRoomUnavailable):
				rejected++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if committed != 1 || rejected != 1 {
			t.Fatalf("want one commit and one rejection, got committed=%d rejected=%d", committed, rejected)
		}
	})

	t.Run("rooms per type includes empty types", func(t *testing.T) {
		if _, err := repo.CreateRoomType(ctx, domain.RoomType{Label: "Penthouse", NightlyRate: 900}); err != nil {
			t.Fatalf("CreateRoomType: %v", err)
		}
		counts, err := repo.CountRoomsPerType(ctx)
		if err != nil {
			t.Fatalf("CountRoomsPerType: %v", err)
		}
		found := false
		for _, c := range counts {
			if c.Label == "Penthouse" {
				found = true
				if c.Rooms != 0 {
					t.Fatalf("empty type should count 0, got %d", c.Rooms)
				}
			}
		}
		if !found {
			t.Fatalf("empty type omitted from report: %+v", counts)
		}
	})

	t.Run("reservation summaries fan out across hotels", func(t *testing.T) {
		rows, err := repo.ListReservationsWithClientAndCity(ctx)
		if err != nil {
			t.Fatalf("ListReservationsWithClientAndCity: %v", err)
		}
		// the Y+Z reservation spans Paris and Lyon, one row per hotel-room
		cities := map[string]int{}
		for _, s := range rows {
			if s.ClientName == "Jean Dupont" {
				cities[s.HotelCity]++
			}
		}
		if cities["Paris"] == 0 || cities["Lyon"] == 0 {
			t.Fatalf("expected rows for both cities, got %v", cities)
		}
	})

	t.Run("unknown client is not found", func(t *testing.T) {
		if _, err := repo.GetClient(ctx, 424242); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("evaluations read back", func(t *testing.T) {
		resID, err := repo.CreateReservation(ctx, domain.ReservationDraft{
			ClientID: clientID, Arrival: mustDate(t, "2025-10-01"), Departure: mustDate(t, "2025-10-02"),
			RoomIDs: []int64{roomZ},
		})
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
		comment := "Très bien."
		if _, err := repo.CreateEvaluation(ctx, domain.Evaluation{ReservationID: resID, Rating: 5, Comment: &comment}); err != nil {
			t.Fatalf("CreateEvaluation: %v", err)
		}
		evals, err := repo.ListEvaluations(ctx, resID)
		if err != nil {
			t.Fatalf("ListEvaluations: %v", err)
		}
		if len(evals) != 1 || evals[0].Rating != 5 || evals[0].Comment == nil || *evals[0].Comment != comment {
			t.Fatalf("unexpected evaluations: %+v", evals)
		}
	})
}
