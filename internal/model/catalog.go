package model

import "time"

type Shop struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

type Category struct {
	ID     int64  `json:"id"`
	ShopID int64  `json:"shop_id"`
	Name   string `json:"name"`
}

// Product is the only catalog entity with an owner. OwnerID is stamped from
// the caller's token subject at creation time and never changes afterwards.
type Product struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"category_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Price      int64     `json:"price"`
	OwnerID    string    `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
}
