package services

import (
	"math"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/entities"
	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/utils"

	"github.com/google/uuid"
)

// AssembleOrders склеивает три батча строк в список заказов.
// Порядок заказов, позиций и модификаторов берется из входных срезов.
func AssembleOrders(orders []entities.OrderRow, items []entities.OrderItemRow, modifiers []entities.ItemModifierRow) []dto.OrderViewDTO {
	modsByItem := make(map[uuid.UUID][]dto.ModifierDTO, len(items))
	for _, m := range modifiers {
		modsByItem[m.Link.OrderItemID] = append(modsByItem[m.Link.OrderItemID], dto.ModifierDTO{
			ID:              m.Modifier.ID,
			Category:        m.Modifier.Category,
			Name:            m.Modifier.Name,
			PriceAdjustment: m.Modifier.PriceAdjustment,
		})
	}

	itemsByOrder := make(map[uuid.UUID][]dto.OrderItemViewDTO, len(orders))
	for _, row := range items {
		mods := modsByItem[row.Item.ID]
		if mods == nil {
			mods = []dto.ModifierDTO{}
		}
		itemsByOrder[row.Item.OrderID] = append(itemsByOrder[row.Item.OrderID], dto.OrderItemViewDTO{
			ID:              row.Item.ID,
			OrderID:         row.Item.OrderID,
			MenuItemID:      row.Item.MenuItemID,
			Quantity:        row.Item.Quantity,
			Status:          row.Item.Status.String(),
			SpecialRequests: utils.NullStringToPtr(row.Item.SpecialRequests),
			MenuItem: dto.ShortMenuItemDTO{
				ID:          row.MenuItem.ID,
				CategoryID:  row.MenuItem.CategoryID,
				Name:        row.MenuItem.Name,
				Description: row.MenuItem.Description,
				Price:       row.MenuItem.Price,
			},
			Modifiers: mods,
			LineTotal: LineTotal(row.MenuItem.Price, mods, row.Item.Quantity),
			CreatedAt: row.Item.CreatedAt,
			UpdatedAt: row.Item.UpdatedAt,
		})
	}

	result := make([]dto.OrderViewDTO, 0, len(orders))
	for _, row := range orders {
		orderItems := itemsByOrder[row.Order.ID]
		if orderItems == nil {
			orderItems = []dto.OrderItemViewDTO{}
		}

		var total float64
		statuses := make([]constants.OrderStatus, 0, len(orderItems))
		for _, it := range orderItems {
			total += it.LineTotal
			statuses = append(statuses, constants.OrderStatus(it.Status))
		}

		result = append(result, dto.OrderViewDTO{
			ID:      row.Order.ID,
			TableID: row.Order.TableID,
			Status:  row.Order.Status.String(),
			Table: dto.ShortTableDTO{
				ID:          row.Table.ID,
				TableNumber: row.Table.TableNumber,
				Capacity:    row.Table.Capacity,
			},
			Items:          orderItems,
			Total:          roundCents(total),
			ReadyForPickup: !row.Order.Status.IsFinal() && constants.AllReady(statuses),
			CreatedAt:      row.Order.CreatedAt,
			UpdatedAt:      row.Order.UpdatedAt,
		})
	}
	return result
}

// LineTotal = (цена позиции + сумма надбавок модификаторов) × количество.
func LineTotal(price float64, modifiers []dto.ModifierDTO, quantity int) float64 {
	unit := price
	for _, m := range modifiers {
		unit += m.PriceAdjustment
	}
	return roundCents(unit * float64(quantity))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// KitchenBucket оставляет заказы, у которых есть позиции в статусе status,
// и в каждом заказе только такие позиции. Корзины не пересекаются.
func KitchenBucket(orders []dto.OrderViewDTO, status constants.OrderStatus) []dto.OrderViewDTO {
	result := make([]dto.OrderViewDTO, 0)
	for _, order := range orders {
		matched := make([]dto.OrderItemViewDTO, 0, len(order.Items))
		for _, it := range order.Items {
			if it.Status == status.String() {
				matched = append(matched, it)
			}
		}
		if len(matched) == 0 {
			continue
		}
		order.Items = matched
		result = append(result, order)
	}
	return result
}
