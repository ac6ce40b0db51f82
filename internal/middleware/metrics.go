package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/park285/pharmacist-relay-go/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics 는 Prometheus HTTP 지표를 기록하는 미들웨어다.
// path 라벨은 등록된 라우트 패턴을 쓴다.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(startedAt).Seconds())
	}
}
