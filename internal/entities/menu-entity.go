package entities

import "github.com/google/uuid"

type MenuCategory struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
}

type MenuItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CategoryID   uuid.UUID `json:"category_id" db:"category_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
}

// Modifier - платная опция позиции (острота, бульон и т.д.). Category - свободная группа.
type Modifier struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Category        string    `json:"category" db:"category"`
	Name            string    `json:"name" db:"name"`
	PriceAdjustment float64   `json:"price_adjustment" db:"price_adjustment"`
}
