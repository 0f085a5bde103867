package handler

import (
	"net/http"

	"rsv-catalog/internal/handler/api"
	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/pkg/metrics"
	"rsv-catalog/internal/usecase/collaboration"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Auth          *api.AuthHandler
	Templates     *api.TemplateHandler
	Quotations    *api.QuotationHandler
	Analytics     *api.AnalyticsHandler
	Collaboration *api.CollaborationHandler
	Favorites     *api.FavoritesHandler
	Versions      *api.VersionsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics, actor *middleware.ActorMiddleware, h Handlers) {
	setupMiddleware(engine, cfg, logger, m)
	setupRoutes(engine, m, actor, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, m *metrics.Metrics, actor *middleware.ActorMiddleware, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.GET("/cotacoes/share", h.Quotations.SharedPage)

	adminOnly := []gin.HandlerFunc{actor.RequireRole(collaboration.RoleAdmin)}

	apiGroup := engine.Group("/api")
	apiGroup.Use(actor.Identify())
	{
		addRoutes(apiGroup.Group("/auth"), []route{
			{Method: http.MethodPost, Path: "/token", Handler: h.Auth.Token},
		})

		addRoutes(apiGroup.Group("/templates"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Templates.List},
			{Method: http.MethodPost, Path: "", Handler: h.Templates.Create},
			{Method: http.MethodGet, Path: "/state", Handler: h.Templates.State},
			{Method: http.MethodPost, Path: "/initialize", Handler: h.Templates.Initialize},
			{Method: http.MethodPost, Path: "/refresh", Handler: h.Templates.Refresh, Mw: adminOnly},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Templates.Stats},
			{Method: http.MethodGet, Path: "/export", Handler: h.Templates.Export},
			{Method: http.MethodPost, Path: "/from-quotation", Handler: h.Templates.FromQuotation},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Templates.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Templates.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Templates.Delete},
			{Method: http.MethodPost, Path: "/:id/use", Handler: h.Templates.Use},
			{Method: http.MethodPost, Path: "/:id/view", Handler: h.Templates.View},
			{Method: http.MethodPost, Path: "/:id/share", Handler: h.Templates.Share},
			{Method: http.MethodPost, Path: "/:id/instantiate", Handler: h.Templates.Instantiate},
			{Method: http.MethodPost, Path: "/:id/favorite", Handler: h.Templates.ToggleFavorite},
			{Method: http.MethodGet, Path: "/:id/versions", Handler: h.Templates.Versions},
			{Method: http.MethodGet, Path: "/:id/versions/compare", Handler: h.Templates.CompareVersions},
			{Method: http.MethodGet, Path: "/:id/versions/:version", Handler: h.Templates.Version},
			{Method: http.MethodPost, Path: "/:id/versions/:version/restore", Handler: h.Templates.RestoreVersion},
			{Method: http.MethodGet, Path: "/:id/history", Handler: h.Templates.History},
			{Method: http.MethodGet, Path: "/:id/comments", Handler: h.Templates.Comments},
			{Method: http.MethodPost, Path: "/:id/comments", Handler: h.Templates.AddComment},
			{Method: http.MethodGet, Path: "/:id/analytics", Handler: h.Templates.Analytics},
			{Method: http.MethodGet, Path: "/:id/trend", Handler: h.Templates.Trend},
		})

		addRoutes(apiGroup.Group("/quotations"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Quotations.List},
			{Method: http.MethodPost, Path: "", Handler: h.Quotations.Create},
			{Method: http.MethodDelete, Path: "", Handler: h.Quotations.ClearAll, Mw: adminOnly},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Quotations.Stats},
			{Method: http.MethodPost, Path: "/sample", Handler: h.Quotations.LoadSample},
			{Method: http.MethodGet, Path: "/settings", Handler: h.Quotations.Settings},
			{Method: http.MethodPut, Path: "/settings", Handler: h.Quotations.SaveSettings},
			{Method: http.MethodGet, Path: "/company", Handler: h.Quotations.Company},
			{Method: http.MethodPut, Path: "/company", Handler: h.Quotations.SaveCompany},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Quotations.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Quotations.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Quotations.Delete},
			{Method: http.MethodPost, Path: "/:id/duplicate", Handler: h.Quotations.Duplicate},
			{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Quotations.UpdateStatus},
			{Method: http.MethodGet, Path: "/:id/export", Handler: h.Quotations.Export},
			{Method: http.MethodGet, Path: "/:id/share", Handler: h.Quotations.Share},
		})

		addRoutes(apiGroup.Group("/analytics"), []route{
			{Method: http.MethodPost, Path: "/events", Handler: h.Analytics.Track},
			{Method: http.MethodGet, Path: "/top", Handler: h.Analytics.Top},
			{Method: http.MethodGet, Path: "/quick", Handler: h.Analytics.Quick},
			{Method: http.MethodGet, Path: "/categories", Handler: h.Analytics.Categories},
			{Method: http.MethodGet, Path: "/regions", Handler: h.Analytics.Regions},
			{Method: http.MethodGet, Path: "/reports", Handler: h.Analytics.Reports},
			{Method: http.MethodPost, Path: "/reports", Handler: h.Analytics.GenerateReport},
			{Method: http.MethodPost, Path: "/recompute", Handler: h.Analytics.Recompute, Mw: adminOnly},
		})

		addRoutes(apiGroup.Group("/collaboration"), []route{
			{Method: http.MethodGet, Path: "/users", Handler: h.Collaboration.Users},
			{Method: http.MethodPost, Path: "/users", Handler: h.Collaboration.CreateUser},
			{Method: http.MethodGet, Path: "/me", Handler: h.Collaboration.Me},
			{Method: http.MethodGet, Path: "/shared", Handler: h.Collaboration.Shared},
			{Method: http.MethodGet, Path: "/activities", Handler: h.Collaboration.Activities},
			{Method: http.MethodGet, Path: "/notifications", Handler: h.Collaboration.Notifications},
			{Method: http.MethodGet, Path: "/workspaces", Handler: h.Collaboration.Workspaces},
			{Method: http.MethodPost, Path: "/workspaces", Handler: h.Collaboration.CreateWorkspace},
			{Method: http.MethodPost, Path: "/workspaces/:id/members", Handler: h.Collaboration.AddMember},
			{Method: http.MethodPost, Path: "/comments/:id/reactions", Handler: h.Collaboration.React},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Collaboration.Stats},
		})

		addRoutes(apiGroup.Group("/favorites"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Favorites.List},
			{Method: http.MethodGet, Path: "/recommended", Handler: h.Favorites.Recommended},
			{Method: http.MethodGet, Path: "/recent", Handler: h.Favorites.Recent},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Favorites.Stats},
			{Method: http.MethodGet, Path: "/export", Handler: h.Favorites.Export},
			{Method: http.MethodPost, Path: "/import", Handler: h.Favorites.Import},
			{Method: http.MethodGet, Path: "/preferences", Handler: h.Favorites.Preferences},
			{Method: http.MethodPut, Path: "/preferences", Handler: h.Favorites.SavePreferences},
		})

		addRoutes(apiGroup.Group("/versions"), []route{
			{Method: http.MethodGet, Path: "/stats", Handler: h.Versions.Stats},
			{Method: http.MethodGet, Path: "/export", Handler: h.Versions.Export},
			{Method: http.MethodPost, Path: "/import", Handler: h.Versions.Import},
			{Method: http.MethodPost, Path: "/cleanup", Handler: h.Versions.Cleanup, Mw: adminOnly},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
