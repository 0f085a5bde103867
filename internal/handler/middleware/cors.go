package middleware

import (
	"log/slog"
	"slices"

	"rsv-catalog/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware lets the catalog frontend read the request id and the
// export filename alongside whatever the config exposes. An empty origin list
// falls back to the local frontend origins.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	defaults := config.DefaultCORSConfig()
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = defaults.AllowOrigins
		slog.Warn("no cors origins configured, using defaults", "origins", origins)
	}
	methods := cfg.AllowMethods
	if len(methods) == 0 {
		methods = defaults.AllowMethods
	}

	expose := slices.Clone(cfg.ExposeHeaders)
	if !slices.Contains(expose, requestIDHeader) {
		expose = append(expose, requestIDHeader)
	}
	headers := slices.Clone(cfg.AllowHeaders)
	if len(headers) == 0 {
		headers = defaults.AllowHeaders
	}
	if !slices.Contains(headers, requestIDHeader) {
		headers = append(headers, requestIDHeader)
	}

	slog.Info("cors configured", "origins", origins, "expose", expose)
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
