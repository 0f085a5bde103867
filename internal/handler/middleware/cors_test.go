//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preflight(t *testing.T, cfg config.CORSConfig, origin string) *nethttptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var handler gin.HandlerFunc
	require.NotPanics(t, func() { handler = middleware.NewCORSMiddleware(cfg) })

	r := gin.New()
	r.Use(handler)
	r.GET("/api/templates", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := nethttptest.NewRequest(http.MethodOptions, "/api/templates", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := nethttptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CORSConfig
		origin  string
		allowed bool
	}{
		{name: "test config", cfg: config.NewTestConfig().CORS, origin: "http://localhost:3000", allowed: true},
		{name: "empty config falls back to defaults", cfg: config.CORSConfig{}, origin: "http://localhost:8080", allowed: true},
		{name: "unknown origin", cfg: config.NewTestConfig().CORS, origin: "https://evil.example", allowed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := preflight(t, tt.cfg, tt.origin)
			if tt.allowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
				return
			}
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
