package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"restaurant-pos/internal/entities"
	"restaurant-pos/internal/repositories"
	"restaurant-pos/pkg/constants"
	apperrors "restaurant-pos/pkg/errors"
	"restaurant-pos/pkg/eventbus"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeOrderRepo - in-memory OrderRepositoryInterface с проверкой внешних ключей
// и условными обновлениями статуса.
type fakeOrderRepo struct {
	mu        sync.Mutex
	clock     time.Time
	tables    map[uuid.UUID]entities.Table
	menuItems map[uuid.UUID]entities.MenuItem
	modifiers map[uuid.UUID]entities.Modifier
	orders    map[uuid.UUID]entities.Order
	items     map[uuid.UUID]entities.OrderItem
	links     []entities.OrderItemModifier

	failItemRows error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		clock:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		tables:    map[uuid.UUID]entities.Table{},
		menuItems: map[uuid.UUID]entities.MenuItem{},
		modifiers: map[uuid.UUID]entities.Modifier{},
		orders:    map[uuid.UUID]entities.Order{},
		items:     map[uuid.UUID]entities.OrderItem{},
	}
}

func (r *fakeOrderRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeOrderRepo) addTable(number int) entities.Table {
	t := entities.Table{ID: uuid.New(), TableNumber: number, Capacity: 4}
	r.tables[t.ID] = t
	return t
}

func (r *fakeOrderRepo) addMenuItem(name string, price float64) entities.MenuItem {
	m := entities.MenuItem{ID: uuid.New(), CategoryID: uuid.New(), Name: name, Price: price}
	r.menuItems[m.ID] = m
	return m
}

func (r *fakeOrderRepo) addModifier(category, name string, adj float64) entities.Modifier {
	m := entities.Modifier{ID: uuid.New(), Category: category, Name: name, PriceAdjustment: adj}
	r.modifiers[m.ID] = m
	return m
}

type fakeSnapshot struct {
	orders map[uuid.UUID]entities.Order
	items  map[uuid.UUID]entities.OrderItem
	links  []entities.OrderItemModifier
}

func (r *fakeOrderRepo) snapshot() fakeSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := fakeSnapshot{
		orders: make(map[uuid.UUID]entities.Order, len(r.orders)),
		items:  make(map[uuid.UUID]entities.OrderItem, len(r.items)),
		links:  append([]entities.OrderItemModifier(nil), r.links...),
	}
	for k, v := range r.orders {
		s.orders[k] = v
	}
	for k, v := range r.items {
		s.items[k] = v
	}
	return s
}

func (r *fakeOrderRepo) restore(s fakeSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders, r.items, r.links = s.orders, s.items, s.links
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, tx pgx.Tx, tableID uuid.UUID) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[tableID]; !ok {
		return nil, fmt.Errorf("%w: orders_table_id_fkey", apperrors.ErrInvalidReference)
	}
	now := r.tick()
	o := entities.Order{ID: uuid.New(), TableID: tableID, Status: constants.StatusPending}
	o.CreatedAt, o.UpdatedAt = now, now
	r.orders[o.ID] = o
	return &o, nil
}

func (r *fakeOrderRepo) CreateOrderItem(ctx context.Context, tx pgx.Tx, item entities.OrderItem) (*entities.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[item.OrderID]; !ok {
		return nil, fmt.Errorf("%w: order_items_order_id_fkey", apperrors.ErrInvalidReference)
	}
	if _, ok := r.menuItems[item.MenuItemID]; !ok {
		return nil, fmt.Errorf("%w: order_items_menu_item_id_fkey", apperrors.ErrInvalidReference)
	}
	now := r.tick()
	item.ID = uuid.New()
	item.Status = constants.StatusPending
	item.CreatedAt, item.UpdatedAt = now, now
	r.items[item.ID] = item
	return &item, nil
}

func (r *fakeOrderRepo) CreateOrderItemModifiers(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, modifierIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range modifierIDs {
		if _, ok := r.modifiers[id]; !ok {
			return fmt.Errorf("%w: order_item_modifiers_modifier_id_fkey", apperrors.ErrInvalidReference)
		}
		r.links = append(r.links, entities.OrderItemModifier{OrderItemID: itemID, ModifierID: id})
	}
	return nil
}

func (r *fakeOrderRepo) FindOrder(ctx context.Context, tx pgx.Tx, id uuid.UUID, forUpdate bool) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) FindOrderItem(ctx context.Context, tx pgx.Tx, id uuid.UUID, forUpdate bool) (*entities.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &it, nil
}

func (r *fakeOrderRepo) sortedItems(orderID uuid.UUID) []entities.OrderItem {
	var out []entities.OrderItem
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *fakeOrderRepo) GetItemStatuses(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]constants.OrderStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	statuses := []constants.OrderStatus{}
	for _, it := range r.sortedItems(orderID) {
		statuses = append(statuses, it.Status)
	}
	return statuses, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to constants.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return apperrors.ErrInvalidTransition
	}
	o.Status, o.UpdatedAt = to, r.tick()
	r.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) UpdateOrderItemStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to constants.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.Status != from {
		return apperrors.ErrInvalidTransition
	}
	it.Status, it.UpdatedAt = to, r.tick()
	r.items[id] = it
	return nil
}

func (r *fakeOrderRepo) UpdateOrderItemsStatus(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, from, to constants.OrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, it := range r.items {
		if it.OrderID == orderID && it.Status == from {
			it.Status = to
			r.items[id] = it
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) GetOrderRows(ctx context.Context, filter repositories.OrderRowFilter) ([]entities.OrderRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.OrderRow
	for _, o := range r.orders {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		if len(filter.IDs) > 0 && !containsID(filter.IDs, o.ID) {
			continue
		}
		if filter.CreatedFrom != nil && o.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !o.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		out = append(out, entities.OrderRow{Order: o, Table: r.tables[o.TableID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order.CreatedAt.After(out[j].Order.CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) GetItemRows(ctx context.Context, orderIDs []uuid.UUID) ([]entities.OrderItemRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failItemRows != nil {
		return nil, r.failItemRows
	}
	var all []entities.OrderItem
	for _, it := range r.items {
		if containsID(orderIDs, it.OrderID) {
			all = append(all, it)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	out := make([]entities.OrderItemRow, 0, len(all))
	for _, it := range all {
		out = append(out, entities.OrderItemRow{Item: it, MenuItem: r.menuItems[it.MenuItemID]})
	}
	return out, nil
}

func (r *fakeOrderRepo) GetModifierRows(ctx context.Context, itemIDs []uuid.UUID) ([]entities.ItemModifierRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.ItemModifierRow
	for _, l := range r.links {
		if containsID(itemIDs, l.OrderItemID) {
			out = append(out, entities.ItemModifierRow{Link: l, Modifier: r.modifiers[l.ModifierID]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Modifier.Category != out[j].Modifier.Category {
			return out[i].Modifier.Category < out[j].Modifier.Category
		}
		return out[i].Modifier.Name < out[j].Modifier.Name
	})
	return out, nil
}

func containsStatus(list []constants.OrderStatus, s constants.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsID(list []uuid.UUID, id uuid.UUID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// fakeTxManager откатывает изменения fakeOrderRepo при ошибке fn.
type fakeTxManager struct {
	repo *fakeOrderRepo
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	snap := m.repo.snapshot()
	if err := fn(nil); err != nil {
		m.repo.restore(snap)
		return err
	}
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (b *recordingBus) Publish(ctx context.Context, event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Name())
	}
	return out
}
