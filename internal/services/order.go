package services

import (
	"context"
	"fmt"
	"strings"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/entities"
	"restaurant-pos/internal/events"
	"restaurant-pos/internal/repositories"
	"restaurant-pos/pkg/constants"
	apperrors "restaurant-pos/pkg/errors"
	"restaurant-pos/pkg/eventbus"
	"restaurant-pos/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderServiceInterface interface {
	FireOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderViewDTO, error)
	ListActiveOrders(ctx context.Context) ([]dto.OrderViewDTO, error)
	KitchenOrders(ctx context.Context, rawStatus string) ([]dto.OrderViewDTO, error)
	PickupOrders(ctx context.Context) ([]dto.OrderViewDTO, error)
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, rawStatus string) (*dto.OrderViewDTO, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*dto.OrderViewDTO, error)
	ServeOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderViewDTO, error)
}

// EventPublisher - часть eventbus.Bus, нужная сервису.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type OrderService struct {
	orderRepo repositories.OrderRepositoryInterface
	txManager repositories.TxManagerInterface
	bus       EventPublisher
	logger    *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus EventPublisher,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo: orderRepo,
		txManager: txManager,
		bus:       bus,
		logger:    logger,
	}
}

// FireOrder создает заказ, позиции и связи с модификаторами в одной транзакции.
func (s *OrderService) FireOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderViewDTO, error) {
	if len(payload.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	var orderID uuid.UUID
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.CreateOrder(ctx, tx, payload.TableID)
		if err != nil {
			return err
		}
		orderID = order.ID

		for i, line := range payload.Items {
			item, err := s.orderRepo.CreateOrderItem(ctx, tx, entities.OrderItem{
				OrderID:         order.ID,
				MenuItemID:      line.MenuItemID,
				Quantity:        line.Quantity,
				SpecialRequests: utils.NullStringFromTrimmed(strings.TrimSpace(line.SpecialRequests)),
			})
			if err != nil {
				return fmt.Errorf("cart line %d: %w", i, err)
			}
			if err := s.orderRepo.CreateOrderItemModifiers(ctx, tx, item.ID, line.ModifierIDs); err != nil {
				return fmt.Errorf("cart line %d modifiers: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("fire order failed", zap.String("table_id", payload.TableID.String()), zap.Error(err))
		return nil, err
	}

	view, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order fired",
		zap.String("order_id", orderID.String()),
		zap.Int("table_number", view.Table.TableNumber),
		zap.Int("items", len(view.Items)),
	)
	s.bus.Publish(ctx, events.OrderFiredEvent{Order: *view})
	return view, nil
}

// ListActiveOrders - все невыданные заказы, новые первыми.
func (s *OrderService) ListActiveOrders(ctx context.Context) ([]dto.OrderViewDTO, error) {
	return s.loadOrders(ctx, repositories.OrderRowFilter{Statuses: constants.ActiveStatuses})
}

func (s *OrderService) KitchenOrders(ctx context.Context, rawStatus string) ([]dto.OrderViewDTO, error) {
	status := constants.StatusPending
	if rawStatus != "" {
		parsed, ok := constants.ParseOrderStatus(rawStatus)
		if !ok || parsed.IsFinal() {
			return nil, apperrors.ErrInvalidStatus
		}
		status = parsed
	}

	orders, err := s.ListActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	return KitchenBucket(orders, status), nil
}

// PickupOrders - активные заказы; ReadyForPickup подсказывает, какие можно выдать.
func (s *OrderService) PickupOrders(ctx context.Context) ([]dto.OrderViewDTO, error) {
	return s.ListActiveOrders(ctx)
}

// UpdateItemStatus - действие кухни над позицией. Статус заказа пересчитывается в той же транзакции.
func (s *OrderService) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, rawStatus string) (*dto.OrderViewDTO, error) {
	to, ok := constants.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}

	item, err := s.orderRepo.FindOrderItem(ctx, nil, itemID, false)
	if err != nil {
		return nil, err
	}

	var itemEvent events.ItemStatusChangedEvent
	var orderEvent *events.OrderStatusChangedEvent
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		// сначала заказ, потом позиция: тот же порядок блокировок, что и в ServeOrder
		order, err := s.orderRepo.FindOrder(ctx, tx, item.OrderID, true)
		if err != nil {
			return err
		}
		locked, err := s.orderRepo.FindOrderItem(ctx, tx, itemID, true)
		if err != nil {
			return err
		}
		if !constants.CanKitchenTransition(locked.Status, to) {
			return apperrors.ErrInvalidTransition
		}
		if err := s.orderRepo.UpdateOrderItemStatus(ctx, tx, itemID, locked.Status, to); err != nil {
			return err
		}
		itemEvent = events.ItemStatusChangedEvent{OrderID: order.ID, ItemID: itemID, From: locked.Status, To: to}

		statuses, err := s.orderRepo.GetItemStatuses(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		derived := constants.DeriveOrderStatus(statuses)
		if derived != order.Status {
			if err := s.orderRepo.UpdateOrderStatus(ctx, tx, order.ID, order.Status, derived); err != nil {
				return err
			}
			orderEvent = &events.OrderStatusChangedEvent{OrderID: order.ID, From: order.Status, To: derived}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order item status changed",
		zap.String("item_id", itemID.String()),
		zap.String("from", itemEvent.From.String()),
		zap.String("to", to.String()),
	)
	s.bus.Publish(ctx, itemEvent)
	if orderEvent != nil {
		s.bus.Publish(ctx, *orderEvent)
	}
	return s.loadOrder(ctx, item.OrderID)
}

// UpdateOrderStatus принимает только served: остальные статусы заказа выводятся из позиций.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*dto.OrderViewDTO, error) {
	to, ok := constants.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}
	if to != constants.StatusServed {
		return nil, apperrors.ErrInvalidTransition
	}
	return s.ServeOrder(ctx, orderID)
}

// ServeOrder выдает заказ, только если все его позиции готовы. Заказ и позиции становятся served.
func (s *OrderService) ServeOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderViewDTO, error) {
	var event events.OrderStatusChangedEvent
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrder(ctx, tx, orderID, true)
		if err != nil {
			return err
		}
		if order.Status.IsFinal() {
			return apperrors.ErrInvalidTransition
		}

		statuses, err := s.orderRepo.GetItemStatuses(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !constants.AllReady(statuses) {
			return apperrors.ErrNotReadyForPickup
		}

		affected, err := s.orderRepo.UpdateOrderItemsStatus(ctx, tx, orderID, constants.StatusReady, constants.StatusServed)
		if err != nil {
			return err
		}
		if affected != int64(len(statuses)) {
			return apperrors.ErrInvalidTransition
		}
		if err := s.orderRepo.UpdateOrderStatus(ctx, tx, orderID, order.Status, constants.StatusServed); err != nil {
			return err
		}
		event = events.OrderStatusChangedEvent{OrderID: orderID, From: order.Status, To: constants.StatusServed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order served", zap.String("order_id", orderID.String()))
	s.bus.Publish(ctx, event)
	return s.loadOrder(ctx, orderID)
}

func (s *OrderService) loadOrder(ctx context.Context, orderID uuid.UUID) (*dto.OrderViewDTO, error) {
	orders, err := s.loadOrders(ctx, repositories.OrderRowFilter{IDs: []uuid.UUID{orderID}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &orders[0], nil
}

func (s *OrderService) loadOrders(ctx context.Context, filter repositories.OrderRowFilter) ([]dto.OrderViewDTO, error) {
	return LoadOrderViews(ctx, s.orderRepo, filter)
}

// LoadOrderViews - три батчевых запроса и склейка. Любая ошибка прерывает всю сборку.
func LoadOrderViews(ctx context.Context, orderRepo repositories.OrderRepositoryInterface, filter repositories.OrderRowFilter) ([]dto.OrderViewDTO, error) {
	orderRows, err := orderRepo.GetOrderRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if len(orderRows) == 0 {
		return []dto.OrderViewDTO{}, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orderRows))
	for _, row := range orderRows {
		orderIDs = append(orderIDs, row.Order.ID)
	}
	itemRows, err := orderRepo.GetItemRows(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	itemIDs := make([]uuid.UUID, 0, len(itemRows))
	for _, row := range itemRows {
		itemIDs = append(itemIDs, row.Item.ID)
	}
	modifierRows, err := orderRepo.GetModifierRows(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("load item modifiers: %w", err)
	}

	return AssembleOrders(orderRows, itemRows, modifierRows), nil
}
