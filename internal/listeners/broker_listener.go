package listeners

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/events"
	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/eventbus"
	"restaurant-pos/pkg/mq"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type kitchenTicketLine struct {
	Name            string   `json:"name"`
	Quantity        int      `json:"quantity"`
	Modifiers       []string `json:"modifiers"`
	SpecialRequests *string  `json:"special_requests,omitempty"`
}

type kitchenTicket struct {
	OrderID     uuid.UUID           `json:"order_id"`
	TableNumber int                 `json:"table_number"`
	Items       []kitchenTicketLine `json:"items"`
	Total       float64             `json:"total"`
	FiredAt     time.Time           `json:"fired_at"`
}

type statusMessage struct {
	OrderID   uuid.UUID  `json:"order_id"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	OldStatus string     `json:"old_status"`
	NewStatus string     `json:"new_status"`
	Timestamp time.Time  `json:"timestamp"`
}

// BrokerListener пересылает доменные события в exchange заказов.
type BrokerListener struct {
	publisher mq.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewBrokerListener(publisher mq.Publisher, logger *zap.Logger) *BrokerListener {
	return &BrokerListener{publisher: publisher, logger: logger, now: time.Now}
}

func (l *BrokerListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderFired, l.onOrderFired)
	bus.Subscribe(events.OrderStatusChanged, l.onOrderStatusChanged)
	bus.Subscribe(events.ItemStatusChanged, l.onItemStatusChanged)
	l.logger.Info("broker listener registered", zap.String("exchange", constants.ExchangeOrders))
}

func (l *BrokerListener) onOrderFired(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderFiredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	ticket := kitchenTicket{
		OrderID:     e.Order.ID,
		TableNumber: e.Order.Table.TableNumber,
		Items:       make([]kitchenTicketLine, 0, len(e.Order.Items)),
		Total:       e.Order.Total,
		FiredAt:     e.Order.CreatedAt,
	}
	for _, item := range e.Order.Items {
		mods := make([]string, 0, len(item.Modifiers))
		for _, m := range item.Modifiers {
			mods = append(mods, m.Name)
		}
		ticket.Items = append(ticket.Items, kitchenTicketLine{
			Name:            item.MenuItem.Name,
			Quantity:        item.Quantity,
			Modifiers:       mods,
			SpecialRequests: item.SpecialRequests,
		})
	}

	key := fmt.Sprintf(constants.RoutingKeyKitchenTicket, ticket.TableNumber)
	if err := l.publisher.PublishJSON(ctx, key, ticket); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	l.logger.Debug("kitchen ticket published", zap.String("routing_key", key), zap.String("order_id", e.Order.ID.String()))
	return nil
}

func (l *BrokerListener) onOrderStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	key := fmt.Sprintf(constants.RoutingKeyOrderStatus, e.To)
	return l.publishStatus(ctx, key, statusMessage{
		OrderID:   e.OrderID,
		OldStatus: string(e.From),
		NewStatus: string(e.To),
		Timestamp: l.now().UTC(),
	})
}

func (l *BrokerListener) onItemStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ItemStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	itemID := e.ItemID
	key := fmt.Sprintf(constants.RoutingKeyItemStatus, e.To)
	return l.publishStatus(ctx, key, statusMessage{
		OrderID:   e.OrderID,
		ItemID:    &itemID,
		OldStatus: string(e.From),
		NewStatus: string(e.To),
		Timestamp: l.now().UTC(),
	})
}

func (l *BrokerListener) publishStatus(ctx context.Context, key string, msg statusMessage) error {
	if err := l.publisher.PublishJSON(ctx, key, msg); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}
