package components

import (
	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/usecase/analytics"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/export"
	"rsv-catalog/internal/usecase/favorites"
	"rsv-catalog/internal/usecase/quotations"
	"rsv-catalog/internal/usecase/session"
	"rsv-catalog/internal/usecase/templates"
	"rsv-catalog/internal/usecase/versions"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseStoresModule,
	usecaseServicesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		quotation.NewDefaultPriceCalculator,
		fx.As(new(quotation.PriceCalculator)),
	),
	func() templates.Generator { return catalog.GenerateAll },
	func(cfg config.Config) config.CatalogConfig { return cfg.Catalog },
)

var usecaseStoresModule = fx.Module("usecase/stores",
	fx.Provide(
		templates.NewStore,
		quotations.NewStore,
		analytics.NewManager,
		versions.NewManager,
		collaboration.NewManager,
		favorites.NewStore,
	),
)

var usecaseServicesModule = fx.Module("usecase/services",
	fx.Provide(
		templates.NewService,
		session.NewService,
		export.NewRenderer,
	),
)
