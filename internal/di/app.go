package di

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/park285/pharmacist-relay-go/internal/config"
	"github.com/park285/pharmacist-relay-go/internal/telemetry"
)

// App: 애플리케이션 구성 요소를 묶는다.
type App struct {
	Server    *http.Server
	Logger    *slog.Logger
	Config    *config.Config
	Telemetry *telemetry.Provider
}

// NewApp: App 인스턴스를 생성합니다.
func NewApp(
	server *http.Server,
	logger *slog.Logger,
	cfg *config.Config,
	telemetryProvider *telemetry.Provider,
) *App {
	return &App{
		Server:    server,
		Logger:    logger,
		Config:    cfg,
		Telemetry: telemetryProvider,
	}
}

// Close: 앱 리소스를 정리합니다.
func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if err := a.Telemetry.Shutdown(ctx); err != nil && a.Logger != nil {
		a.Logger.Warn("telemetry_shutdown_failed", "err", err)
	}
}
