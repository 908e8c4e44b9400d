// Package cache implementa los puertos de caché de saldos y bloqueo distribuido sobre Redis.
// Sin Redis configurado se usan las variantes noop: sin caché y sin bloqueo.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ledger-recon/pkg/config"
)

// Connect abre el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Address, err)
	}
	return rdb, nil
}
