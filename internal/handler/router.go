package handler

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/park285/pharmacist-relay-go/internal/config"
	"github.com/park285/pharmacist-relay-go/internal/httperror"
	"github.com/park285/pharmacist-relay-go/internal/middleware"
)

// NewRouter 는 HTTP 라우터를 구성한다.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	medicineHandler *MedicineHandler,
	statsHandler *StatsHandler,
) *gin.Engine {
	setGinMode(cfg.Logging.Level)

	router := gin.New()
	configureTrustedProxies(router, cfg.HTTP.TrustedProxies, logger)
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		middleware.Metrics(),
	)
	if cfg.HTTP.GzipEnabled {
		// /metrics 는 promhttp 가 직접 압축한다.
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}
	router.Use(middleware.RateLimit(cfg))

	router.NoRoute(func(c *gin.Context) {
		writeError(c, httperror.NewNotFound(c.Request.Method, c.Request.URL.Path))
	})

	RegisterHealthRoutes(router, cfg)
	medicineHandler.RegisterRoutes(router)
	statsHandler.RegisterRoutes(router)

	return router
}

// configureTrustedProxies 는 ClientIP 가 X-Forwarded-For 를 읽을 프록시를 제한한다.
// 목록이 비었거나 잘못되었으면 어떤 프록시도 신뢰하지 않는다.
func configureTrustedProxies(router *gin.Engine, proxies []string, logger *slog.Logger) {
	if len(proxies) == 0 {
		_ = router.SetTrustedProxies(nil)
		return
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		if logger != nil {
			logger.Warn("trusted_proxies_invalid", "proxies", proxies, "err", err)
		}
		_ = router.SetTrustedProxies(nil)
	}
}

func setGinMode(level string) {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
