package components

import (
	"rsv-catalog/internal/handler"
	"rsv-catalog/internal/handler/api"
	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/usecase/session"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewTemplateHandler,
		api.NewQuotationHandler,
		api.NewAnalyticsHandler,
		api.NewCollaborationHandler,
		api.NewFavoritesHandler,
		api.NewVersionsHandler,
		func(s session.Service) middleware.TokenValidator { return s },
		middleware.NewActorMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
