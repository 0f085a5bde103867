package middleware

import (
	"strconv"
	"time"

	"rsv-catalog/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics labels requests by route template so ids do not explode cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
