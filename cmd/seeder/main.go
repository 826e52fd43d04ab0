package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hoteldb/internal/adapters/observability"
	"hoteldb/internal/domain"
	"hoteldb/internal/shared"
	mysqlrepo "hoteldb/internal/storage/mysql"
)

// Destructive bootstrap: drops and recreates the whole schema, then loads
// the fixture dataset.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	log.Info().Msg("schema recreated")

	// catalog shared by all hotels
	typeIDs := make([]int64, len(roomTypes))
	for i, t := range roomTypes {
		if typeIDs[i], err = repo.CreateRoomType(ctx, t); err != nil {
			log.Fatal().Err(err).Msg("seed room type failed")
		}
	}
	amenityIDs := make([]int64, len(amenities))
	for i, a := range amenities {
		if amenityIDs[i], err = repo.CreateAmenity(ctx, a); err != nil {
			log.Fatal().Err(err).Msg("seed amenity failed")
		}
	}

	// per-hotel batches run concurrently; each goroutine owns its slot in
	// roomIDs so no locking is needed
	roomIDs := make([][]int64, len(hotels))
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for i, hf := range hotels {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(i int, hf hotelFixture) {
			defer wg.Done()
			defer sem.Release(1)

			hotelID, err := repo.CreateHotel(ctx, hf.Hotel)
			if err != nil {
				log.Fatal().Err(err).Str("city", hf.Hotel.City).Msg("seed hotel failed")
			}
			ids := make([]int64, len(hf.Rooms))
			for j, rf := range hf.Rooms {
				ids[j], err = repo.CreateRoom(ctx, domain.Room{
					Floor: rf.Floor, Smoking: rf.Smoking, HotelID: hotelID, TypeID: typeIDs[rf.TypeIdx],
				})
				if err != nil {
					log.Fatal().Err(err).Str("city", hf.Hotel.City).Msg("seed room failed")
				}
			}
			for _, ai := range hf.AmenityIdx {
				if err := repo.LinkHotelAmenity(ctx, hotelID, amenityIDs[ai]); err != nil {
					log.Fatal().Err(err).Str("city", hf.Hotel.City).Msg("link amenity failed")
				}
			}
			roomIDs[i] = ids
			log.Info().Str("city", hf.Hotel.City).Int("rooms", len(ids)).Msg("hotel seeded")
		}(i, hf)
	}
	wg.Wait()

	// clients and their stays depend on room ids, so they load after the
	// hotel batches finish
	for _, cf := range clients {
		clientID, err := repo.CreateClient(ctx, cf.Client)
		if err != nil {
			log.Fatal().Err(err).Str("client", cf.Client.FullName).Msg("seed client failed")
		}
		for _, stay := range cf.Stays {
			arrival, err := domain.ParseDate(stay.Arrival)
			if err != nil {
				log.Fatal().Err(err).Msg("bad fixture arrival date")
			}
			departure, err := domain.ParseDate(stay.Departure)
			if err != nil {
				log.Fatal().Err(err).Msg("bad fixture departure date")
			}
			rooms := make([]int64, len(stay.Rooms))
			for k, ref := range stay.Rooms {
				rooms[k] = roomIDs[ref.HotelIdx][ref.RoomIdx]
			}
			resID, err := repo.CreateReservation(ctx, domain.ReservationDraft{
				ClientID: clientID, Arrival: arrival, Departure: departure, RoomIDs: rooms,
			})
			if err != nil {
				log.Fatal().Err(err).Str("client", cf.Client.FullName).Msg("seed reservation failed")
			}
			if stay.Rating > 0 {
				comment := stay.Comment
				if _, err := repo.CreateEvaluation(ctx, domain.Evaluation{
					ReservationID: resID, Rating: stay.Rating, Comment: &comment,
				}); err != nil {
					log.Fatal().Err(err).Msg("seed evaluation failed")
				}
			}
		}
	}

	log.Info().Msg("seeding completed")
}
