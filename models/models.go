package models

import "time"

type User struct {
	ID       int
	Username string
	Password string
	Balance  int
}

type Artwork struct {
	ID        int
	Title     string
	Data      string
	Price     int
	OwnerID   int
	IsPrivate bool
	Signature string
	CreatedAt time.Time
	OwnerName string
}

type Transaction struct {
	ID           int
	BuyerID      int
	SellerID     int
	ArtworkID    int
	Amount       int
	CreatedAt    time.Time
	BuyerName    string
	SellerName   string
	ArtworkTitle string
}
