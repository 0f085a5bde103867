package components

import (
	"rsv-catalog/internal/infra/storage"
	"rsv-catalog/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			storage.NewAdapter,
			fx.As(new(shared.Persistence)),
		),
	),
)
