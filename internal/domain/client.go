package domain

type Client struct {
	ID         int64
	FullName   string
	Address    string
	City       string
	PostalCode string
	Email      string
	Phone      string
}
