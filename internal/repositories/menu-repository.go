package repositories

import (
	"context"

	"restaurant-pos/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	categoryTable  = "menu_categories"
	categoryFields = "id, name, display_order"

	menuItemTable  = "menu_items"
	menuItemFields = "id, category_id, name, description, price, display_order"

	modifierTable  = "modifiers"
	modifierFields = "id, category, name, price_adjustment"
)

type MenuRepositoryInterface interface {
	GetCategories(ctx context.Context) ([]entities.MenuCategory, error)
	// GetMenuItems без categoryID возвращает все позиции.
	GetMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]entities.MenuItem, error)
	GetModifiers(ctx context.Context) ([]entities.Modifier, error)
}

type MenuRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMenuRepository(storage *pgxpool.Pool, logger *zap.Logger) MenuRepositoryInterface {
	return &MenuRepository{storage: storage, logger: logger}
}

func (r *MenuRepository) GetCategories(ctx context.Context) ([]entities.MenuCategory, error) {
	query, args, err := psql.Select(categoryFields).From(categoryTable).OrderBy("display_order ASC", "name ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query menu categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]entities.MenuCategory, 0)
	for rows.Next() {
		var c entities.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *MenuRepository) GetMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]entities.MenuItem, error) {
	builder := psql.Select(menuItemFields).From(menuItemTable).OrderBy("display_order ASC", "name ASC")
	if categoryID != nil {
		builder = builder.Where(sq.Eq{"category_id": *categoryID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query menu items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.MenuItem, 0)
	for rows.Next() {
		var m entities.MenuItem
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Price, &m.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MenuRepository) GetModifiers(ctx context.Context) ([]entities.Modifier, error) {
	query, args, err := psql.Select(modifierFields).From(modifierTable).OrderBy("category ASC", "name ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query modifiers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	modifiers := make([]entities.Modifier, 0)
	for rows.Next() {
		var m entities.Modifier
		if err := rows.Scan(&m.ID, &m.Category, &m.Name, &m.PriceAdjustment); err != nil {
			return nil, err
		}
		modifiers = append(modifiers, m)
	}
	return modifiers, rows.Err()
}
