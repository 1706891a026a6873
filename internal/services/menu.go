package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-pos/internal/entities"
	"restaurant-pos/internal/repositories"
	"restaurant-pos/pkg/constants"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MenuServiceInterface interface {
	GetTables(ctx context.Context) ([]entities.Table, error)
	GetCategories(ctx context.Context) ([]entities.MenuCategory, error)
	GetMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]entities.MenuItem, error)
	GetModifiers(ctx context.Context) ([]entities.Modifier, error)
	InvalidateCache(ctx context.Context) error
}

// MenuService читает справочники через Redis. Ошибки кеша не ломают чтение, только логируются.
type MenuService struct {
	tableRepo repositories.TableRepositoryInterface
	menuRepo  repositories.MenuRepositoryInterface
	cache     repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewMenuService(
	tableRepo repositories.TableRepositoryInterface,
	menuRepo repositories.MenuRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) MenuServiceInterface {
	return &MenuService{
		tableRepo: tableRepo,
		menuRepo:  menuRepo,
		cache:     cache,
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *MenuService) GetTables(ctx context.Context) ([]entities.Table, error) {
	return cached(ctx, s, constants.CacheKeyTables, func() ([]entities.Table, error) {
		return s.tableRepo.GetTables(ctx)
	})
}

func (s *MenuService) GetCategories(ctx context.Context) ([]entities.MenuCategory, error) {
	return cached(ctx, s, constants.CacheKeyCategories, func() ([]entities.MenuCategory, error) {
		return s.menuRepo.GetCategories(ctx)
	})
}

func (s *MenuService) GetMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]entities.MenuItem, error) {
	suffix := "all"
	if categoryID != nil {
		suffix = categoryID.String()
	}
	return cached(ctx, s, fmt.Sprintf(constants.CacheKeyMenuItems, suffix), func() ([]entities.MenuItem, error) {
		return s.menuRepo.GetMenuItems(ctx, categoryID)
	})
}

func (s *MenuService) GetModifiers(ctx context.Context) ([]entities.Modifier, error) {
	return cached(ctx, s, constants.CacheKeyModifiers, func() ([]entities.Modifier, error) {
		return s.menuRepo.GetModifiers(ctx)
	})
}

// InvalidateCache сбрасывает все ключи меню, включая позиции по категориям.
func (s *MenuService) InvalidateCache(ctx context.Context) error {
	n, err := s.cache.DelByPrefix(ctx, constants.CacheKeyMenuPrefix)
	if err != nil {
		return fmt.Errorf("invalidate menu cache: %w", err)
	}
	s.logger.Info("menu cache invalidated", zap.Int("keys", n))
	return nil
}

func cached[T any](ctx context.Context, s *MenuService, key string, load func() ([]T, error)) ([]T, error) {
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		s.logger.Warn("corrupted cache entry", zap.String("key", key))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
			s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
