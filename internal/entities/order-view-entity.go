package entities

// Строки батчевого чтения заказов. Склейка в денормализованный вид - в сервисе.

type OrderRow struct {
	Order Order
	Table Table
}

type OrderItemRow struct {
	Item     OrderItem
	MenuItem MenuItem
}

type ItemModifierRow struct {
	Link     OrderItemModifier
	Modifier Modifier
}
