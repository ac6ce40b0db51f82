package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/park285/pharmacist-relay-go/internal/cache"
	"github.com/park285/pharmacist-relay-go/internal/config"
	"github.com/park285/pharmacist-relay-go/internal/httperror"
	"github.com/park285/pharmacist-relay-go/internal/metrics"
)

// RateLimit 는 클라이언트별 분당 요청 제한 미들웨어다.
// RequestsPerMinute 가 0 이하이면 아무것도 하지 않는다.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	limit := 0
	cacheSize := 0
	cacheTTL := time.Duration(0)
	if cfg != nil {
		limit = cfg.HTTPRateLimit.RequestsPerMinute
		cacheSize = cfg.HTTPRateLimit.CacheSize
		cacheTTL = time.Duration(cfg.HTTPRateLimit.CacheTTLSeconds) * time.Second
	}
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	counter := cache.NewTTLCache[string, int](cacheSize, cacheTTL)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || !shouldLimitPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		identity := rateLimitIdentity(c)
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("%s:%d", identity, window)

		count, ok := counter.Modify(key, func(current int, _ bool) int { return current + 1 })
		if !ok {
			c.Next()
			return
		}

		if count > limit {
			metrics.RateLimitRejectedTotal.Inc()
			c.Header("Retry-After", fmt.Sprintf("%d", 60-time.Now().Unix()%60))
			details := map[string]any{
				"path":             c.Request.URL.Path,
				"identity":         identity,
				"limit_per_minute": limit,
			}
			status, payload := httperror.Response(httperror.NewRateLimitExceeded(details), GetRequestID(c))
			c.AbortWithStatusJSON(status, payload)
			return
		}

		c.Next()
	}
}

func shouldLimitPath(path string) bool {
	return path == "/get-gemini-response/" || strings.HasPrefix(path, "/api/")
}

// rateLimitIdentity 는 gin 의 신뢰 프록시 설정을 거친 ClientIP 만 사용한다.
func rateLimitIdentity(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}

	return "ip:unknown"
}
