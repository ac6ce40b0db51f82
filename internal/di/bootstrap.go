//go:build !wireinject

package di

import (
	"fmt"

	"github.com/park285/pharmacist-relay-go/internal/config"
	medicinedomain "github.com/park285/pharmacist-relay-go/internal/domain/medicine"
	"github.com/park285/pharmacist-relay-go/internal/gemini"
	"github.com/park285/pharmacist-relay-go/internal/handler"
	"github.com/park285/pharmacist-relay-go/internal/metrics"
	"github.com/park285/pharmacist-relay-go/internal/server"
	"github.com/park285/pharmacist-relay-go/internal/usecase/medicine"
)

// InitializeApp 은 애플리케이션 의존성을 초기화하고 App 인스턴스를 반환한다.
// API 키가 없으면 서버를 만들기 전에 실패한다.
func InitializeApp() (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	telemetryProvider, err := ProvideTelemetry(cfg)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	metricsStore := metrics.NewStore()

	geminiClient, err := gemini.NewClient(cfg, metricsStore)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	prompts, err := medicinedomain.NewPrompts()
	if err != nil {
		return nil, fmt.Errorf("medicine prompts: %w", err)
	}

	service := medicine.New(geminiClient, prompts, logger)
	medicineHandler := handler.NewMedicineHandler(service, logger)
	statsHandler := handler.NewStatsHandler(metricsStore)

	router := handler.NewRouter(cfg, logger, medicineHandler, statsHandler)
	httpServer := server.NewHTTPServer(cfg, router)

	return NewApp(httpServer, logger, cfg, telemetryProvider), nil
}
