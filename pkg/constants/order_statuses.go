package constants

// OrderStatus - общий статус для заказа и для позиции заказа (совпадает с enum order_status в БД).
type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusCooking OrderStatus = "cooking"
	StatusReady   OrderStatus = "ready"
	StatusServed  OrderStatus = "served"
)

// Порядок продвижения; индекс = шаг
var statusFlow = []OrderStatus{StatusPending, StatusCooking, StatusReady, StatusServed}

// ActiveStatuses - заказы, которые еще не выданы.
var ActiveStatuses = []OrderStatus{StatusPending, StatusCooking, StatusReady}

// allowedTransitions: только один шаг вперед.
var allowedTransitions = map[OrderStatus]OrderStatus{
	StatusPending: StatusCooking,
	StatusCooking: StatusReady,
	StatusReady:   StatusServed,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	return s.rank() >= 0
}

func (s OrderStatus) IsFinal() bool {
	return s == StatusServed
}

func (s OrderStatus) rank() int {
	for i, st := range statusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseOrderStatus принимает только значения из enum.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

func CanTransition(from, to OrderStatus) bool {
	next, ok := allowedTransitions[from]
	return ok && next == to
}

// CanKitchenTransition - кухня не выдает заказы, served только через выдачу.
func CanKitchenTransition(from, to OrderStatus) bool {
	return to != StatusServed && CanTransition(from, to)
}

// DeriveOrderStatus - статус заказа равен наименее продвинутому статусу его позиций.
// Для пустого списка возвращает pending.
func DeriveOrderStatus(items []OrderStatus) OrderStatus {
	if len(items) == 0 {
		return StatusPending
	}
	least := len(statusFlow) - 1
	for _, s := range items {
		if r := s.rank(); r >= 0 && r < least {
			least = r
		}
	}
	return statusFlow[least]
}

// AllReady - условие выдачи: хотя бы одна позиция и все в статусе ready.
func AllReady(items []OrderStatus) bool {
	if len(items) == 0 {
		return false
	}
	for _, s := range items {
		if s != StatusReady {
			return false
		}
	}
	return true
}
