// pkg/constants/constants.go
package constants

//============== STAFF ROLES ==============

// StaffRole - роль, выбранная сотрудником при входе.
type StaffRole string

const (
	RoleWaiter  StaffRole = "waiter"
	RoleKitchen StaffRole = "kitchen"
	RolePickup  StaffRole = "pickup"
)

func (r StaffRole) IsValid() bool {
	switch r {
	case RoleWaiter, RoleKitchen, RolePickup:
		return true
	}
	return false
}

//============== CACHE KEYS ==============

// Ключи справочников меню в Redis. Все начинаются с CacheKeyMenuPrefix.
const (
	CacheKeyMenuPrefix = "menu:"
	CacheKeyTables     = "menu:tables"
	CacheKeyCategories = "menu:categories"
	CacheKeyModifiers  = "menu:modifiers"
	// Формат: menu:items:<category_id|all>
	CacheKeyMenuItems = "menu:items:%s"
)

//============== BROKER ==============

const (
	ExchangeOrders = "orders_topic"
	// Формат: kitchen.ticket.<table_number>
	RoutingKeyKitchenTicket = "kitchen.ticket.%d"
	// Формат: order.status.<status>
	RoutingKeyOrderStatus = "order.status.%s"
	// Формат: item.status.<status>
	RoutingKeyItemStatus = "item.status.%s"
)

//============== WEBSOCKET ==============

const (
	MessageTypeOrdersSnapshot = "orders.snapshot"
)
