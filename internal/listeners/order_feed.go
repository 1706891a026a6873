package listeners

import (
	"context"
	"errors"
	"sync"
	"time"

	"restaurant-pos/internal/dto"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// ActiveOrderLister - источник полного списка активных заказов.
type ActiveOrderLister interface {
	ListActiveOrders(ctx context.Context) ([]dto.OrderViewDTO, error)
}

type Subscriber func(orders []dto.OrderViewDTO)

// OrderFeed при каждом изменении заказов заново собирает активные заказы и раздает их подписчикам.
// Серия изменений, пришедшая во время сборки, схлопывается в одну следующую сборку.
type OrderFeed struct {
	source         ChangeSource
	orders         ActiveOrderLister
	reconnectDelay time.Duration
	logger         *zap.Logger

	mu          sync.RWMutex
	subscribers map[int]Subscriber
	nextID      int
	latest      []dto.OrderViewDTO
	hasLatest   bool

	trigger chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

var ErrFeedStarted = errors.New("order feed already started")

func NewOrderFeed(source ChangeSource, orders ActiveOrderLister, reconnectDelay time.Duration, logger *zap.Logger) *OrderFeed {
	if reconnectDelay <= 0 {
		reconnectDelay = time.Second
	}
	return &OrderFeed{
		source:         source,
		orders:         orders,
		reconnectDelay: reconnectDelay,
		logger:         logger,
		subscribers:    make(map[int]Subscriber),
	}
}

// Subscribe регистрирует получателя снимков. Возвращает функцию отписки.
func (f *OrderFeed) Subscribe(fn Subscriber) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subscribers[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subscribers, id)
		f.mu.Unlock()
	}
}

// Latest - последний успешно собранный снимок.
func (f *OrderFeed) Latest() ([]dto.OrderViewDTO, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest, f.hasLatest
}

func (f *OrderFeed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.cancel != nil {
		f.mu.Unlock()
		return ErrFeedStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.trigger = make(chan struct{}, 1)
	f.mu.Unlock()

	f.wg.Add(2)
	go f.listenLoop(ctx)
	go f.refreshLoop(ctx)
	f.logger.Info("order feed started")
	return nil
}

// Stop останавливает обе горутины и ждет их завершения. После Stop фид можно запустить снова.
func (f *OrderFeed) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	f.wg.Wait()
	f.logger.Info("order feed stopped")
}

func (f *OrderFeed) notify() {
	select {
	case f.trigger <- struct{}{}:
	default:
	}
}

func (f *OrderFeed) listenLoop(ctx context.Context) {
	defer f.wg.Done()

	backoff := retry.NewConstant(f.reconnectDelay)
	attempt := 0
	_ = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := f.source.Listen(ctx, f.notify)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = errors.New("change source closed")
		}
		f.logger.Warn("order change feed disconnected, reconnecting",
			zap.Int("attempt", attempt),
			zap.Duration("delay", f.reconnectDelay),
			zap.Error(err),
		)
		return retry.RetryableError(err)
	})
}

func (f *OrderFeed) refreshLoop(ctx context.Context) {
	defer f.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.trigger:
			f.refresh(ctx)
		}
	}
}

func (f *OrderFeed) refresh(ctx context.Context) {
	orders, err := f.orders.ListActiveOrders(ctx)
	if err != nil {
		if ctx.Err() == nil {
			// подписчики остаются со старым списком до следующей удачной сборки
			f.logger.Error("order feed refresh failed", zap.Error(err))
		}
		return
	}

	f.mu.Lock()
	f.latest, f.hasLatest = orders, true
	subs := make([]Subscriber, 0, len(f.subscribers))
	for _, s := range f.subscribers {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	for _, s := range subs {
		s(orders)
	}
}
