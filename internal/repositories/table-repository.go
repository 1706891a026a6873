package repositories

import (
	"context"

	"restaurant-pos/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	tableTable  = "tables"
	tableFields = "id, table_number, capacity, created_at"
)

type TableRepositoryInterface interface {
	GetTables(ctx context.Context) ([]entities.Table, error)
}

type TableRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTableRepository(storage *pgxpool.Pool, logger *zap.Logger) TableRepositoryInterface {
	return &TableRepository{storage: storage, logger: logger}
}

func (r *TableRepository) GetTables(ctx context.Context) ([]entities.Table, error) {
	query, args, err := psql.Select(tableFields).From(tableTable).OrderBy("table_number ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query tables", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	tables := make([]entities.Table, 0)
	for rows.Next() {
		var t entities.Table
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Capacity, &t.CreatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
