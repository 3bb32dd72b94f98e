package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID        int64       `json:"id" db:"id"`
	Reference uuid.UUID   `json:"reference" db:"reference"`
	Name      string      `json:"name" db:"name"`
	Address   string      `json:"address" db:"address"`
	Total     float64     `json:"total" db:"total"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	Items     []OrderItem `json:"items" db:"-"`
}
