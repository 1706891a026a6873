package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"restaurant-pos/pkg/constants"
)

// Timestamps - служебные поля заказа и позиции; updated_at меняется при каждой смене статуса.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Order struct {
	ID      uuid.UUID             `json:"id" db:"id"`
	TableID uuid.UUID             `json:"table_id" db:"table_id"`
	Status  constants.OrderStatus `json:"status" db:"status"`

	Timestamps
}

type OrderItem struct {
	ID              uuid.UUID             `json:"id" db:"id"`
	OrderID         uuid.UUID             `json:"order_id" db:"order_id"`
	MenuItemID      uuid.UUID             `json:"menu_item_id" db:"menu_item_id"`
	Quantity        int                   `json:"quantity" db:"quantity"`
	Status          constants.OrderStatus `json:"status" db:"status"`
	SpecialRequests null.String           `json:"special_requests" db:"special_requests"`

	Timestamps
}

// OrderItemModifier - связь позиции заказа с выбранным модификатором.
type OrderItemModifier struct {
	OrderItemID uuid.UUID `db:"order_item_id"`
	ModifierID  uuid.UUID `db:"modifier_id"`
}
