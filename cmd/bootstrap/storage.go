package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"rsv-catalog/internal/infra/kv"
	"rsv-catalog/internal/pkg/config"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewBackend,
	),
)

// NewBackend opens the key-value backend selected by STORAGE_DRIVER.
func NewBackend(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (kv.Backend, error) {
	var (
		backend kv.Backend
		err     error
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		var opts []kv.MemoryOption
		if cfg.Storage.MemoryQuota > 0 {
			opts = append(opts, kv.WithQuota(cfg.Storage.MemoryQuota))
		}
		backend = kv.NewMemoryBackend(opts...)
	case config.StorageDriverFile:
		backend, err = kv.NewFileBackend(cfg.Storage.FileDir)
	case config.StorageDriverRedis:
		client, cerr := connectRedis(cfg.Redis)
		if cerr != nil {
			return nil, cerr
		}
		backend = kv.NewRedisBackend(client)
	case config.StorageDriverPostgres:
		pool, cerr := connectPostgres(cfg.DB)
		if cerr != nil {
			return nil, cerr
		}
		backend = kv.NewPostgresBackend(pool)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	backend = kv.WithPrefix(backend, cfg.Storage.KeyPrefix)
	logger.Info("storage backend ready", "driver", cfg.Storage.Driver, "prefix", cfg.Storage.KeyPrefix)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return backend.Close()
		},
	})
	return backend, nil
}
