package listeners

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/events"
	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/eventbus"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	key     string
	payload interface{}
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{key: key, payload: payload})
	return nil
}

func newTestBroker(pub *fakePublisher) (*BrokerListener, *eventbus.Bus) {
	bus := eventbus.New(zap.NewNop())
	l := NewBrokerListener(pub, zap.NewNop())
	l.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	l.Register(bus)
	return l, bus
}

func TestBrokerListener_KitchenTicket(t *testing.T) {
	pub := &fakePublisher{}
	_, bus := newTestBroker(pub)

	note := "no onions"
	order := dto.OrderViewDTO{
		ID:    uuid.New(),
		Table: dto.ShortTableDTO{TableNumber: 7},
		Items: []dto.OrderItemViewDTO{{
			Quantity:        2,
			SpecialRequests: &note,
			MenuItem:        dto.ShortMenuItemDTO{Name: "Burger"},
			Modifiers:       []dto.ModifierDTO{{Name: "Extra cheese"}},
		}},
		Total: 25.5,
	}
	bus.Publish(context.Background(), events.OrderFiredEvent{Order: order})
	bus.Wait()

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "kitchen.ticket.7", pub.msgs[0].key)
	ticket, ok := pub.msgs[0].payload.(kitchenTicket)
	require.True(t, ok)
	assert.Equal(t, order.ID, ticket.OrderID)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "Burger", ticket.Items[0].Name)
	assert.Equal(t, []string{"Extra cheese"}, ticket.Items[0].Modifiers)
	assert.Equal(t, &note, ticket.Items[0].SpecialRequests)
}

func TestBrokerListener_StatusRoutingKeys(t *testing.T) {
	pub := &fakePublisher{}
	_, bus := newTestBroker(pub)

	orderID, itemID := uuid.New(), uuid.New()
	bus.Publish(context.Background(), events.ItemStatusChangedEvent{
		OrderID: orderID, ItemID: itemID, From: constants.StatusPending, To: constants.StatusCooking,
	})
	bus.Wait()
	bus.Publish(context.Background(), events.OrderStatusChangedEvent{
		OrderID: orderID, From: constants.StatusReady, To: constants.StatusServed,
	})
	bus.Wait()

	require.Len(t, pub.msgs, 2)
	assert.Equal(t, "item.status.cooking", pub.msgs[0].key)
	itemMsg := pub.msgs[0].payload.(statusMessage)
	require.NotNil(t, itemMsg.ItemID)
	assert.Equal(t, itemID, *itemMsg.ItemID)
	assert.Equal(t, "pending", itemMsg.OldStatus)

	assert.Equal(t, "order.status.served", pub.msgs[1].key)
	orderMsg := pub.msgs[1].payload.(statusMessage)
	assert.Nil(t, orderMsg.ItemID)
	assert.Equal(t, "served", orderMsg.NewStatus)
}

func TestBrokerListener_PublishErrorIsReturned(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	l := NewBrokerListener(pub, zap.NewNop())

	err := l.onOrderStatusChanged(context.Background(), events.OrderStatusChangedEvent{To: constants.StatusServed})
	assert.ErrorContains(t, err, "order.status.served")

	err = l.onOrderFired(context.Background(), events.OrderStatusChangedEvent{})
	assert.ErrorContains(t, err, "unexpected event type")
}
