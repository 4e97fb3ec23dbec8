// Package cache implementa reporting.ReportCache sobre Redis y en memoria.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/charity-reports-api/internal/application/reporting"
	"github.com/jhoicas/charity-reports-api/pkg/config"
)

var _ reporting.ReportCache = (*RedisReportCache)(nil)

// KeyPrefix espacio de nombres de las claves de reportes.
const KeyPrefix = "charity-reports:"

// RedisReportCache guarda payloads serializados con expiración.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache conecta y verifica con PING.
func NewRedisReportCache(ctx context.Context, cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: conectar %s: %w", cfg.Addr, err)
	}
	return &RedisReportCache{client: client}, nil
}

// NewRedisReportCacheWithClient usa un cliente existente; el llamador conserva su propiedad.
func NewRedisReportCacheWithClient(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{client: client}
}

// Get implementa reporting.ReportCache. redis.Nil es un fallo de caché, no un error.
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set implementa reporting.ReportCache.
func (c *RedisReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, KeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (c *RedisReportCache) Close() error { return c.client.Close() }
