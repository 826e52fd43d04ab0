package main

import "hoteldb/internal/domain"

// Seed fixtures mirroring the original hoteldb dataset: two hotels
// (Paris, Lyon), three room types, a small amenity catalog and a handful
// of clients with past stays.

type roomFixture struct {
	Floor   int
	Smoking bool
	TypeIdx int // index into roomTypes
}

type hotelFixture struct {
	Hotel      domain.Hotel
	Rooms      []roomFixture
	AmenityIdx []int // indexes into amenities
}

type roomRef struct {
	HotelIdx int
	RoomIdx  int
}

type stayFixture struct {
	Arrival   string
	Departure string
	Rooms     []roomRef
	Rating    int    // 0 = no evaluation
	Comment   string // used when Rating > 0
}

type clientFixture struct {
	Client domain.Client
	Stays  []stayFixture
}

var roomTypes = []domain.RoomType{
	{Label: "Simple", NightlyRate: 80},
	{Label: "Double", NightlyRate: 120},
	{Label: "Suite", NightlyRate: 250},
}

var amenities = []domain.Amenity{
	{Label: "Petit déjeuner", Price: 15},
	{Label: "Parking", Price: 20},
	{Label: "Spa", Price: 45},
	{Label: "Wifi", Price: 0},
}

var hotels = []hotelFixture{
	{
		Hotel: domain.Hotel{City: "Paris", Country: "France", PostalCode: "75001"},
		Rooms: []roomFixture{
			{Floor: 1, Smoking: false, TypeIdx: 0},
			{Floor: 1, Smoking: false, TypeIdx: 1},
			{Floor: 2, Smoking: true, TypeIdx: 1},
			{Floor: 3, Smoking: false, TypeIdx: 2},
		},
		AmenityIdx: []int{0, 1, 3},
	},
	{
		Hotel: domain.Hotel{City: "Lyon", Country: "France", PostalCode: "69002"},
		Rooms: []roomFixture{
			{Floor: 1, Smoking: false, TypeIdx: 0},
			{Floor: 2, Smoking: false, TypeIdx: 1},
			{Floor: 2, Smoking: true, TypeIdx: 2},
		},
		AmenityIdx: []int{0, 2, 3},
	},
}

var clients = []clientFixture{
	{
		Client: domain.Client{
			FullName: "Jean Dupont", Address: "12 rue de Rivoli", City: "Paris",
			PostalCode: "75004", Email: "jean.dupont@example.fr", Phone: "+33 6 11 22 33 44",
		},
		Stays: []stayFixture{
			{Arrival: "2025-07-02", Departure: "2025-07-05", Rooms: []roomRef{{0, 0}}, Rating: 4, Comment: "Séjour agréable."},
			{Arrival: "2025-08-10", Departure: "2025-08-12", Rooms: []roomRef{{1, 1}}},
		},
	},
	{
		Client: domain.Client{
			FullName: "Marie Martin", Address: "5 place Bellecour", City: "Lyon",
			PostalCode: "69002", Email: "marie.martin@example.fr", Phone: "+33 6 55 66 77 88",
		},
		Stays: []stayFixture{
			{Arrival: "2025-07-14", Departure: "2025-07-20", Rooms: []roomRef{{0, 3}}, Rating: 5, Comment: "Suite magnifique."},
		},
	},
	{
		Client: domain.Client{
			FullName: "Sophie Bernard", Address: "8 avenue Jean Jaurès", City: "Paris",
			PostalCode: "75019", Email: "sophie.bernard@example.fr", Phone: "+33 7 99 88 77 66",
		},
		// family booking: two rooms on the same reservation
		Stays: []stayFixture{
			{Arrival: "2025-09-01", Departure: "2025-09-04", Rooms: []roomRef{{0, 1}, {0, 2}}},
		},
	},
	{
		// no stays yet; appears with zero reservations in the per-client report
		Client: domain.Client{
			FullName: "Luca Moretti", Address: "3 rue de la République", City: "Lyon",
			PostalCode: "69001", Email: "luca.moretti@example.it", Phone: "+39 333 123 4567",
		},
	},
}
