// Package cache invalida en Redis las vistas agregadas que dependen del inventario.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Panaderia-api/internal/application/inventory"
)

var _ inventory.CacheInvalidator = (*RedisInvalidator)(nil)

// NewRedis crea el cliente y valida la conexión al arrancar.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RedisInvalidator borra las claves señaladas por el motor después de cada commit.
type RedisInvalidator struct {
	rdb redis.Cmdable
}

// NewRedisInvalidator construye el invalidador sobre un cliente (o pipeline) de go-redis.
func NewRedisInvalidator(rdb redis.Cmdable) *RedisInvalidator {
	return &RedisInvalidator{rdb: rdb}
}

// Invalidate borra las claves. Una clave inexistente no es error.
func (c *RedisInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del %v: %w", keys, err)
	}
	return nil
}
