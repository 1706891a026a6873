package events

import (
	"restaurant-pos/internal/dto"
	"restaurant-pos/pkg/constants"

	"github.com/google/uuid"
)

const (
	OrderFired         = "order.fired"
	OrderStatusChanged = "order.status.changed"
	ItemStatusChanged  = "order.item.status.changed"
)

// OrderFiredEvent - заказ и все его позиции закоммичены.
type OrderFiredEvent struct {
	Order dto.OrderViewDTO
}

func (e OrderFiredEvent) Name() string { return OrderFired }

type OrderStatusChangedEvent struct {
	OrderID uuid.UUID
	From    constants.OrderStatus
	To      constants.OrderStatus
}

func (e OrderStatusChangedEvent) Name() string { return OrderStatusChanged }

type ItemStatusChangedEvent struct {
	OrderID uuid.UUID
	ItemID  uuid.UUID
	From    constants.OrderStatus
	To      constants.OrderStatus
}

func (e ItemStatusChangedEvent) Name() string { return ItemStatusChanged }
