package bootstrap

import (
	"context"
	"fmt"
	"time"

	"rsv-catalog/internal/infra/db"
	"rsv-catalog/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// connectPostgres opens the pool; the postgres backend owns it and closes it on shutdown.
func connectPostgres(cfg config.DBConfig) (*pgxpool.Pool, error) {
	pool, _, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func connectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
