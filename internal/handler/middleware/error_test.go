//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery())
	r.Use(middleware.NewLogger(config.NewTestConfig().Log).LoggingMiddleware())
	r.Use(middleware.ErrorHandler())
	r.GET("/storage", func(c *gin.Context) {
		_ = c.Error(errs.Mark(errors.New("redis down"), errs.ErrStorageWrite))
	})
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(errs.Wrap(errs.ErrTemplateNotFound, "tpl-1"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("catalog generator exploded")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestErrorHandler(t *testing.T) {
	r := newErrorRouter()

	t.Run("private storage error", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/storage", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusServiceUnavailable, "Storage unavailable")
	})

	t.Run("private not found keeps the detail", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/missing", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "Not Found")
		assert.Contains(t, rec.Body.String(), "tpl-1")
	})

	t.Run("panic", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("untouched response", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/ok", nil, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newErrorRouter()

	req := httptest.NewRequest(t, http.MethodGet, "/ok", nil, "")
	req.Header.Set("X-Request-ID", "frontend-42")
	rec := httptest.Serve(r, req)

	assert.Equal(t, "frontend-42", rec.Header().Get("X-Request-ID"))
}
