package domain

type Hotel struct {
	ID         int64
	City       string
	Country    string
	PostalCode string
}

type RoomType struct {
	ID          int64
	Label       string
	NightlyRate float64
}

type Room struct {
	ID      int64
	Floor   int
	Smoking bool
	HotelID int64
	TypeID  int64
}

// Amenity rows are catalog data, read-only for this core.
type Amenity struct {
	ID    int64
	Label string
	Price float64
}
