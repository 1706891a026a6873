package dto

import (
	"time"

	"github.com/google/uuid"
)

// CartLineDTO - одна строка корзины официанта.
type CartLineDTO struct {
	MenuItemID      uuid.UUID   `json:"menu_item_id" validate:"required"`
	Quantity        int         `json:"quantity" validate:"required,gte=1"`
	ModifierIDs     []uuid.UUID `json:"modifier_ids" validate:"omitempty,unique,dive,required"`
	SpecialRequests string      `json:"special_requests" validate:"max=500"`
}

type CreateOrderDTO struct {
	TableID uuid.UUID     `json:"table_id" validate:"required"`
	Items   []CartLineDTO `json:"items" validate:"dive"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

type ShortTableDTO struct {
	ID          uuid.UUID `json:"id"`
	TableNumber int       `json:"table_number"`
	Capacity    int       `json:"capacity"`
}

type ShortMenuItemDTO struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
}

type ModifierDTO struct {
	ID              uuid.UUID `json:"id"`
	Category        string    `json:"category"`
	Name            string    `json:"name"`
	PriceAdjustment float64   `json:"price_adjustment"`
}

type OrderItemViewDTO struct {
	ID              uuid.UUID        `json:"id"`
	OrderID         uuid.UUID        `json:"order_id"`
	MenuItemID      uuid.UUID        `json:"menu_item_id"`
	Quantity        int              `json:"quantity"`
	Status          string           `json:"status"`
	SpecialRequests *string          `json:"special_requests"`
	MenuItem        ShortMenuItemDTO `json:"menu_item"`
	Modifiers       []ModifierDTO    `json:"modifiers"`
	LineTotal       float64          `json:"line_total"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// OrderViewDTO - денормализованный заказ для экранов кухни и выдачи.
type OrderViewDTO struct {
	ID             uuid.UUID          `json:"id"`
	TableID        uuid.UUID          `json:"table_id"`
	Status         string             `json:"status"`
	Table          ShortTableDTO      `json:"table"`
	Items          []OrderItemViewDTO `json:"items"`
	Total          float64            `json:"total"`
	ReadyForPickup bool               `json:"ready_for_pickup"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
