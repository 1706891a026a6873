package entities

import (
	"time"

	"github.com/google/uuid"
)

// Table - стол в зале, справочник.
type Table struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TableNumber int       `json:"table_number" db:"table_number"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
