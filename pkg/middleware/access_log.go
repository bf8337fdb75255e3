package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/agenda/agenda-service/pkg/logger"
	"github.com/agenda/agenda-service/pkg/metrics"
)

// AccessLog logs one structured line per request and counts it. Unmatched
// routes are reported under the route label "unmatched".
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		logger.InfoFields("request", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      route,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": GetRequestID(c),
			"client_ip":  c.ClientIP(),
		})
	}
}
