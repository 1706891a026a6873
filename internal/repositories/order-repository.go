package repositories

import (
	"context"
	"time"

	"restaurant-pos/internal/entities"
	"restaurant-pos/pkg/constants"
	apperrors "restaurant-pos/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	orderTable             = "orders"
	orderItemTable         = "order_items"
	orderItemModifierTable = "order_item_modifiers"

	orderFields     = "id, table_id, status, created_at, updated_at"
	orderItemFields = "id, order_id, menu_item_id, quantity, status, special_requests, created_at, updated_at"
)

// OrderRowFilter - условия выборки заказов; пустые поля не фильтруют.
type OrderRowFilter struct {
	Statuses    []constants.OrderStatus
	IDs         []uuid.UUID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, tx pgx.Tx, tableID uuid.UUID) (*entities.Order, error)
	CreateOrderItem(ctx context.Context, tx pgx.Tx, item entities.OrderItem) (*entities.OrderItem, error)
	CreateOrderItemModifiers(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, modifierIDs []uuid.UUID) error

	FindOrder(ctx context.Context, tx pgx.Tx, id uuid.UUID, forUpdate bool) (*entities.Order, error)
	FindOrderItem(ctx context.Context, tx pgx.Tx, id uuid.UUID, forUpdate bool) (*entities.OrderItem, error)
	GetItemStatuses(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]constants.OrderStatus, error)

	UpdateOrderStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to constants.OrderStatus) error
	UpdateOrderItemStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to constants.OrderStatus) error
	UpdateOrderItemsStatus(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, from, to constants.OrderStatus) (int64, error)

	// Батчевое чтение для сборки заказов: три запроса на любое число заказов.
	GetOrderRows(ctx context.Context, filter OrderRowFilter) ([]entities.OrderRow, error)
	GetItemRows(ctx context.Context, orderIDs []uuid.UUID) ([]entities.OrderItemRow, error)
	GetModifierRows(ctx context.Context, itemIDs []uuid.UUID) ([]entities.ItemModifierRow, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func (r *OrderRepository) getQuerier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	var status string
	if err := row.Scan(&o.ID, &o.TableID, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = constants.OrderStatus(status)
	return &o, nil
}

func scanOrderItem(row pgx.Row) (*entities.OrderItem, error) {
	var it entities.OrderItem
	var status string
	if err := row.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &status,
		&it.SpecialRequests, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Status = constants.OrderStatus(status)
	return &it, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, tableID uuid.UUID) (*entities.Order, error) {
	query, args, err := psql.Insert(orderTable).
		Columns("table_id", "status").
		Values(tableID, string(constants.StatusPending)).
		Suffix("RETURNING " + orderFields).
		ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		r.logger.Error("failed to insert order", zap.String("table_id", tableID.String()), zap.Error(err))
		return nil, translateError(err)
	}
	return order, nil
}

func (r *OrderRepository) CreateOrderItem(ctx context.Context, tx pgx.Tx, item entities.OrderItem) (*entities.OrderItem, error) {
	query, args, err := psql.Insert(orderItemTable).
		Columns("order_id", "menu_item_id", "quantity", "status", "special_requests").
		Values(item.OrderID, item.MenuItemID, item.Quantity, string(constants.StatusPending), item.SpecialRequests).
		Suffix("RETURNING " + orderItemFields).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanOrderItem(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		r.logger.Error("failed to insert order item",
			zap.String("order_id", item.OrderID.String()),
			zap.String("menu_item_id", item.MenuItemID.String()),
			zap.Error(err),
		)
		return nil, translateError(err)
	}
	return created, nil
}

func (r *OrderRepository) CreateOrderItemModifiers(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, modifierIDs []uuid.UUID) error {
	if len(modifierIDs) == 0 {
		return nil
	}

	builder := psql.Insert(orderItemModifierTable).Columns("order_item_id", "modifier_id")
	for _, modifierID := range modifierIDs {
		builder = builder.Values(itemID, modifierID)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		r.logger.Error("failed to link modifiers", zap.String("order_item_id", itemID.String()), zap.Error(err))
		return translateError(err)
	}
	return nil
}

func (r *OrderRepository) FindOrder(ctx context.Context, tx pgx.Tx, id uuid.UUID, forUpdate bool) (*entities.Order, error) {
	builder := psql.Select(orderFields).From(orderTable).Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return order, nil
}

func (r *OrderRepository) FindOrderItem(ctx context.Context, tx pgx.Tx, id uuid.UUID, forUpdate bool) (*entities.OrderItem, error) {
	builder := psql.Select(orderItemFields).From(orderItemTable).Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	item, err := scanOrderItem(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return item, nil
}

func (r *OrderRepository) GetItemStatuses(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]constants.OrderStatus, error) {
	query, args, err := psql.Select("status").From(orderItemTable).
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getQuerier(tx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]constants.OrderStatus, 0)
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		statuses = append(statuses, constants.OrderStatus(status))
	}
	return statuses, rows.Err()
}

// conditionalStatusUpdate меняет статус только если он все еще равен from.
// Ноль затронутых строк значит, что кто-то успел раньше.
func (r *OrderRepository) conditionalStatusUpdate(ctx context.Context, tx pgx.Tx, table string, where sq.Eq, from, to constants.OrderStatus) (int64, error) {
	where["status"] = string(from)
	query, args, err := psql.Update(table).
		Set("status", string(to)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(where).
		ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update status",
			zap.String("table", table),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.Error(err),
		)
		return 0, translateError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to constants.OrderStatus) error {
	affected, err := r.conditionalStatusUpdate(ctx, tx, orderTable, sq.Eq{"id": id}, from, to)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func (r *OrderRepository) UpdateOrderItemStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to constants.OrderStatus) error {
	affected, err := r.conditionalStatusUpdate(ctx, tx, orderItemTable, sq.Eq{"id": id}, from, to)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func (r *OrderRepository) UpdateOrderItemsStatus(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, from, to constants.OrderStatus) (int64, error) {
	return r.conditionalStatusUpdate(ctx, tx, orderItemTable, sq.Eq{"order_id": orderID}, from, to)
}

func (r *OrderRepository) GetOrderRows(ctx context.Context, filter OrderRowFilter) ([]entities.OrderRow, error) {
	builder := psql.Select(
		"o.id", "o.table_id", "o.status", "o.created_at", "o.updated_at",
		"t.id", "t.table_number", "t.capacity", "t.created_at",
	).
		From(orderTable + " o").
		Join(tableTable + " t ON t.id = o.table_id").
		OrderBy("o.created_at DESC", "o.id DESC")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		builder = builder.Where(sq.Eq{"o.status": statuses})
	}
	if len(filter.IDs) > 0 {
		builder = builder.Where(sq.Eq{"o.id": filter.IDs})
	}
	if filter.CreatedFrom != nil {
		builder = builder.Where(sq.GtOrEq{"o.created_at": *filter.CreatedFrom})
	}
	if filter.CreatedTo != nil {
		builder = builder.Where(sq.Lt{"o.created_at": *filter.CreatedTo})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.OrderRow, 0)
	for rows.Next() {
		var row entities.OrderRow
		var status string
		if err := rows.Scan(
			&row.Order.ID, &row.Order.TableID, &status, &row.Order.CreatedAt, &row.Order.UpdatedAt,
			&row.Table.ID, &row.Table.TableNumber, &row.Table.Capacity, &row.Table.CreatedAt,
		); err != nil {
			return nil, err
		}
		row.Order.Status = constants.OrderStatus(status)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *OrderRepository) GetItemRows(ctx context.Context, orderIDs []uuid.UUID) ([]entities.OrderItemRow, error) {
	if len(orderIDs) == 0 {
		return []entities.OrderItemRow{}, nil
	}

	query, args, err := psql.Select(
		"oi.id", "oi.order_id", "oi.menu_item_id", "oi.quantity", "oi.status", "oi.special_requests",
		"oi.created_at", "oi.updated_at",
		"mi.id", "mi.category_id", "mi.name", "mi.description", "mi.price", "mi.display_order",
	).
		From(orderItemTable + " oi").
		Join(menuItemTable + " mi ON mi.id = oi.menu_item_id").
		Where(sq.Eq{"oi.order_id": orderIDs}).
		OrderBy("oi.created_at ASC", "oi.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query order items", zap.Int("orders", len(orderIDs)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.OrderItemRow, 0)
	for rows.Next() {
		var row entities.OrderItemRow
		var status string
		var special null.String
		if err := rows.Scan(
			&row.Item.ID, &row.Item.OrderID, &row.Item.MenuItemID, &row.Item.Quantity, &status, &special,
			&row.Item.CreatedAt, &row.Item.UpdatedAt,
			&row.MenuItem.ID, &row.MenuItem.CategoryID, &row.MenuItem.Name, &row.MenuItem.Description,
			&row.MenuItem.Price, &row.MenuItem.DisplayOrder,
		); err != nil {
			return nil, err
		}
		row.Item.Status = constants.OrderStatus(status)
		row.Item.SpecialRequests = special
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *OrderRepository) GetModifierRows(ctx context.Context, itemIDs []uuid.UUID) ([]entities.ItemModifierRow, error) {
	if len(itemIDs) == 0 {
		return []entities.ItemModifierRow{}, nil
	}

	query, args, err := psql.Select(
		"oim.order_item_id", "oim.modifier_id",
		"m.id", "m.category", "m.name", "m.price_adjustment",
	).
		From(orderItemModifierTable + " oim").
		Join(modifierTable + " m ON m.id = oim.modifier_id").
		Where(sq.Eq{"oim.order_item_id": itemIDs}).
		OrderBy("m.category ASC", "m.name ASC", "m.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query item modifiers", zap.Int("items", len(itemIDs)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.ItemModifierRow, 0)
	for rows.Next() {
		var row entities.ItemModifierRow
		if err := rows.Scan(
			&row.Link.OrderItemID, &row.Link.ModifierID,
			&row.Modifier.ID, &row.Modifier.Category, &row.Modifier.Name, &row.Modifier.PriceAdjustment,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
