package services

import (
	"context"
	"errors"
	"testing"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/entities"
	"restaurant-pos/internal/events"
	"restaurant-pos/pkg/constants"
	apperrors "restaurant-pos/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	repo  *fakeOrderRepo
	bus   *recordingBus
	svc   OrderServiceInterface
	table entities.Table
	ramen entities.MenuItem
	gyoza entities.MenuItem
	spicy entities.Modifier
	egg   entities.Modifier
	ctx   context.Context
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	repo := newFakeOrderRepo()
	bus := &recordingBus{}
	f := &orderFixture{
		repo:  repo,
		bus:   bus,
		svc:   NewOrderService(repo, &fakeTxManager{repo: repo}, bus, zap.NewNop()),
		table: repo.addTable(7),
		ramen: repo.addMenuItem("Tonkotsu", 14.50),
		gyoza: repo.addMenuItem("Gyoza", 6.00),
		spicy: repo.addModifier("Spice Level", "Hot", 0),
		egg:   repo.addModifier("Toppings", "Extra Egg", 1.50),
		ctx:   context.Background(),
	}
	return f
}

func (f *orderFixture) fireTwoLines(t *testing.T) *dto.OrderViewDTO {
	t.Helper()
	order, err := f.svc.FireOrder(f.ctx, dto.CreateOrderDTO{
		TableID: f.table.ID,
		Items: []dto.CartLineDTO{
			{MenuItemID: f.ramen.ID, Quantity: 2, ModifierIDs: []uuid.UUID{f.egg.ID, f.spicy.ID}, SpecialRequests: "  no onion "},
			{MenuItemID: f.gyoza.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	return order
}

func TestFireOrder_TwoLinesCreateOneOrderWithPendingItems(t *testing.T) {
	f := newOrderFixture(t)

	order := f.fireTwoLines(t)

	assert.Len(t, f.repo.orders, 1)
	assert.Len(t, f.repo.items, 2)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, 7, order.Table.TableNumber)
	require.Len(t, order.Items, 2)

	ramen := order.Items[0]
	assert.Equal(t, "Tonkotsu", ramen.MenuItem.Name)
	assert.Equal(t, "pending", ramen.Status)
	require.NotNil(t, ramen.SpecialRequests)
	assert.Equal(t, "no onion", *ramen.SpecialRequests)
	require.Len(t, ramen.Modifiers, 2)
	assert.Equal(t, "Spice Level", ramen.Modifiers[0].Category)
	assert.InDelta(t, 32.0, ramen.LineTotal, 0.001)

	assert.Nil(t, order.Items[1].SpecialRequests)
	assert.Empty(t, order.Items[1].Modifiers)
	assert.InDelta(t, 38.0, order.Total, 0.001)

	active, err := f.svc.ListActiveOrders(f.ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, order.ID, active[0].ID)
	for _, it := range active[0].Items {
		assert.Equal(t, "pending", it.Status)
	}

	assert.Equal(t, []string{events.OrderFired}, f.bus.names())
}

func TestFireOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.FireOrder(f.ctx, dto.CreateOrderDTO{TableID: f.table.ID})

	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.bus.names())
}

func TestFireOrder_BadLineRollsBackWholeOrder(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.FireOrder(f.ctx, dto.CreateOrderDTO{
		TableID: f.table.ID,
		Items: []dto.CartLineDTO{
			{MenuItemID: f.ramen.ID, Quantity: 1},
			{MenuItemID: uuid.New(), Quantity: 1},
		},
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.repo.items)
	assert.Empty(t, f.bus.names())
}

func TestFireOrder_UnknownModifierRollsBack(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.FireOrder(f.ctx, dto.CreateOrderDTO{
		TableID: f.table.ID,
		Items:   []dto.CartLineDTO{{MenuItemID: f.ramen.ID, Quantity: 1, ModifierIDs: []uuid.UUID{uuid.New()}}},
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
	assert.Empty(t, f.repo.orders)
	assert.Empty(t, f.repo.links)
}

func bucketItemIDs(t *testing.T, svc OrderServiceInterface, status string) map[uuid.UUID]bool {
	t.Helper()
	orders, err := svc.KitchenOrders(context.Background(), status)
	require.NoError(t, err)
	ids := map[uuid.UUID]bool{}
	for _, o := range orders {
		for _, it := range o.Items {
			assert.Equal(t, status, it.Status)
			ids[it.ID] = true
		}
	}
	return ids
}

func TestKitchenBuckets_AreDisjointThroughTheFlow(t *testing.T) {
	f := newOrderFixture(t)
	order := f.fireTwoLines(t)
	first, second := order.Items[0].ID, order.Items[1].ID

	assertDisjoint := func() {
		seen := map[uuid.UUID]string{}
		for _, s := range []string{"pending", "cooking", "ready"} {
			for id := range bucketItemIDs(t, f.svc, s) {
				prev, dup := seen[id]
				assert.False(t, dup, "item %s in both %s and %s", id, prev, s)
				seen[id] = s
			}
		}
	}

	assert.True(t, bucketItemIDs(t, f.svc, "pending")[first])
	assertDisjoint()

	updated, err := f.svc.UpdateItemStatus(f.ctx, first, "cooking")
	require.NoError(t, err)
	assert.Equal(t, "pending", updated.Status, "order follows its least advanced item")
	assert.True(t, bucketItemIDs(t, f.svc, "cooking")[first])
	assert.False(t, bucketItemIDs(t, f.svc, "pending")[first])
	assertDisjoint()

	_, err = f.svc.UpdateItemStatus(f.ctx, second, "cooking")
	require.NoError(t, err)
	updated, err = f.svc.UpdateItemStatus(f.ctx, first, "ready")
	require.NoError(t, err)
	assert.Equal(t, "cooking", updated.Status)
	assert.True(t, bucketItemIDs(t, f.svc, "ready")[first])
	assert.False(t, bucketItemIDs(t, f.svc, "cooking")[first])
	assertDisjoint()

	// пустая строка - корзина pending по умолчанию
	pending, err := f.svc.KitchenOrders(f.ctx, "")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUpdateItemStatus_RejectsInvalidTransitions(t *testing.T) {
	f := newOrderFixture(t)
	order := f.fireTwoLines(t)
	itemID := order.Items[0].ID

	_, err := f.svc.UpdateItemStatus(f.ctx, itemID, "ready")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "skipping cooking")

	_, err = f.svc.UpdateItemStatus(f.ctx, itemID, "served")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "kitchen cannot serve")

	_, err = f.svc.UpdateItemStatus(f.ctx, itemID, "pending")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "no-op")

	_, err = f.svc.UpdateItemStatus(f.ctx, itemID, "done")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = f.svc.UpdateItemStatus(f.ctx, uuid.New(), "cooking")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.UpdateItemStatus(f.ctx, itemID, "cooking")
	require.NoError(t, err)
	_, err = f.svc.UpdateItemStatus(f.ctx, itemID, "pending")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "no regression")

	assert.Equal(t, constants.StatusCooking, f.repo.items[itemID].Status)
}

func TestServeOrder_GatedOnAllItemsReady(t *testing.T) {
	f := newOrderFixture(t)
	order := f.fireTwoLines(t)
	first, second := order.Items[0].ID, order.Items[1].ID

	pickup, err := f.svc.PickupOrders(f.ctx)
	require.NoError(t, err)
	require.Len(t, pickup, 1)
	assert.False(t, pickup[0].ReadyForPickup)

	_, err = f.svc.ServeOrder(f.ctx, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotReadyForPickup)

	for _, id := range []uuid.UUID{first, second} {
		_, err = f.svc.UpdateItemStatus(f.ctx, id, "cooking")
		require.NoError(t, err)
	}
	_, err = f.svc.UpdateItemStatus(f.ctx, first, "ready")
	require.NoError(t, err)

	pickup, err = f.svc.PickupOrders(f.ctx)
	require.NoError(t, err)
	assert.False(t, pickup[0].ReadyForPickup, "one item still cooking")
	_, err = f.svc.ServeOrder(f.ctx, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotReadyForPickup)

	updated, err := f.svc.UpdateItemStatus(f.ctx, second, "ready")
	require.NoError(t, err)
	assert.Equal(t, "ready", updated.Status)
	assert.True(t, updated.ReadyForPickup)

	served, err := f.svc.ServeOrder(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "served", served.Status)
	assert.False(t, served.ReadyForPickup)
	for _, it := range served.Items {
		assert.Equal(t, "served", it.Status)
	}

	active, err := f.svc.ListActiveOrders(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = f.svc.ServeOrder(f.ctx, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.ServeOrder(f.ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateOrderStatus_OnlyServed(t *testing.T) {
	f := newOrderFixture(t)
	order := f.fireTwoLines(t)

	_, err := f.svc.UpdateOrderStatus(f.ctx, order.ID, "cooking")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.UpdateOrderStatus(f.ctx, order.ID, "eaten")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = f.svc.UpdateOrderStatus(f.ctx, order.ID, "served")
	assert.ErrorIs(t, err, apperrors.ErrNotReadyForPickup)
}

func TestListActiveOrders_IdempotentNewestFirst(t *testing.T) {
	f := newOrderFixture(t)
	older := f.fireTwoLines(t)
	newer := f.fireTwoLines(t)

	first, err := f.svc.ListActiveOrders(f.ctx)
	require.NoError(t, err)
	second, err := f.svc.ListActiveOrders(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, newer.ID, first[0].ID)
	assert.Equal(t, older.ID, first[1].ID)
}

func TestListActiveOrders_AbortsOnLookupFailure(t *testing.T) {
	f := newOrderFixture(t)
	f.fireTwoLines(t)
	f.repo.failItemRows = errors.New("connection reset")

	orders, err := f.svc.ListActiveOrders(f.ctx)

	assert.Error(t, err)
	assert.Nil(t, orders)
}

func TestKitchenOrders_RejectsServedBucket(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.KitchenOrders(f.ctx, "served")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestListActiveOrders_EmptyIsNotAnError(t *testing.T) {
	f := newOrderFixture(t)

	orders, err := f.svc.ListActiveOrders(f.ctx)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
