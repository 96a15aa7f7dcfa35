// Package cache содержит кэш выборок по дню поверх Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"whispr/internal/diary/ports/cache"
	"whispr/pkg/logger"
)

const (
	methodGet    = "get"
	methodSet    = "set"
	methodDelete = "delete"

	ErrFailedToGet    = "failed to get value from redis"
	ErrFailedToSet    = "failed to set value in redis"
	ErrFailedToDelete = "failed to delete keys from redis"
	ErrFailedToClose  = "failed to close redis connection"
)

// RedisCache реализует cache.Cache.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

var _ cache.Cache = (*RedisCache)(nil)

// NewRedisCache оборачивает уже подключенный клиент.
func NewRedisCache(client *redis.Client, defaultTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, defaultTTL: defaultTTL}
}

// Get возвращает значение по ключу или пустую строку, если ключа нет.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		logger.Log(ctx).Debug(ctx, ErrFailedToGet,
			zap.String("method", methodGet), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrFailedToGet, err)
	}
	return value, nil
}

// Set сохраняет значение. Нулевой ttl заменяется значением по умолчанию.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Log(ctx).Debug(ctx, ErrFailedToSet,
			zap.String("method", methodSet), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToSet, err)
	}
	return nil
}

// Delete удаляет ключи, отсутствующие ключи игнорируются.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Log(ctx).Debug(ctx, ErrFailedToDelete,
			zap.String("method", methodDelete), zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrFailedToDelete, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToClose, err)
	}
	return nil
}
