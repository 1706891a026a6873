package repositories

import (
	"context"
	"strings"

	"restaurant-pos/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	userTable  = "users"
	userFields = "id, email, password_hash, created_at"
)

type UserRepositoryInterface interface {
	// FindByEmail сравнивает без учета регистра.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// CreateUser пишет email в нижнем регистре; дубликат отдает ErrConflict.
	CreateUser(ctx context.Context, email, passwordHash string) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query, args, err := psql.Select(userFields).From(userTable).
		Where(sq.Eq{"LOWER(email)": strings.ToLower(email)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash string) (*entities.User, error) {
	query, args, err := psql.Insert(userTable).
		Columns("email", "password_hash").
		Values(strings.ToLower(email), passwordHash).
		Suffix("RETURNING " + userFields).
		ToSql()
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		r.logger.Warn("failed to insert user", zap.Error(err))
		return nil, err
	}
	return user, nil
}
