package bootstrap

import (
	"context"
	"log/slog"

	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/usecase/quotations"
	"rsv-catalog/internal/usecase/templates"

	"go.uber.org/fx"
)

var CatalogModule = fx.Module("catalog",
	fx.Invoke(registerCatalogInit),
)

// registerCatalogInit generates the default catalog before the server starts
// serving, so the first request does not pay for it.
func registerCatalogInit(lc fx.Lifecycle, cfg config.Config, store templates.Store, qs quotations.Store, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Catalog.InitOnStart {
				state, err := store.InitializeDefaults(ctx)
				if err != nil {
					return err
				}
				logger.Info("catalog ready", "state", state, "version", store.Version(ctx))
			}
			if cfg.Catalog.SeedSamples && len(qs.GetAll(ctx)) == 0 {
				if _, err := qs.LoadSampleData(ctx); err != nil {
					return err
				}
				logger.Info("sample quotations loaded")
			}
			return nil
		},
	})
}
