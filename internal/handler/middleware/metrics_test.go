//go:build unit

package middleware_test

import (
	"net/http"
	"strings"
	"testing"

	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/metrics"
	"rsv-catalog/tests/common/httptest"

	"github.com/gin-gonic/gin"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	router := gin.New()
	router.Use(middleware.Metrics(m))
	router.GET("/templates/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	httptest.PerformRequest(t, router, http.MethodGet, "/templates/hotel-1", nil, "")
	httptest.PerformRequest(t, router, http.MethodGet, "/templates/hotel-2", nil, "")
	httptest.PerformRequest(t, router, http.MethodGet, "/nope", nil, "")

	expected := `
# HELP rsv_http_requests_total HTTP requests by route and status.
# TYPE rsv_http_requests_total counter
rsv_http_requests_total{method="GET",route="/templates/:id",status="200"} 2
rsv_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, promtest.GatherAndCompare(m.Registry(), strings.NewReader(expected), "rsv_http_requests_total"))
}
