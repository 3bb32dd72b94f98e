package models

import (
	"time"
)

type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Image     string    `json:"image" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductSeed is one row of the catalog bootstrap data, either compiled in
// or supplied through PRODUCT_SEED_JSON.
type ProductSeed struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}
