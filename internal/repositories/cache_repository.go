package repositories

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// CacheRepositoryInterface - кеш справочников меню. Значения - готовый JSON.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	// Get возвращает ErrCacheMiss, если ключа нет.
	Get(ctx context.Context, key string) ([]byte, error)
	// DelByPrefix удаляет все ключи с префиксом и возвращает их число.
	DelByPrefix(ctx context.Context, prefix string) (int, error)
}
