//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/park285/pharmacist-relay-go/internal/config"
	medicinedomain "github.com/park285/pharmacist-relay-go/internal/domain/medicine"
	"github.com/park285/pharmacist-relay-go/internal/gemini"
	"github.com/park285/pharmacist-relay-go/internal/handler"
	"github.com/park285/pharmacist-relay-go/internal/metrics"
	"github.com/park285/pharmacist-relay-go/internal/server"
	"github.com/park285/pharmacist-relay-go/internal/usecase/medicine"
)

func InitializeApp() (*App, error) {
	wire.Build(
		config.ProvideConfig,
		ProvideLogger,
		ProvideTelemetry,
		metrics.NewStore,
		gemini.NewClient,
		wire.Bind(new(gemini.Generator), new(*gemini.Client)),
		medicinedomain.NewPrompts,
		medicine.New,
		wire.Bind(new(handler.Answerer), new(*medicine.Service)),
		handler.NewMedicineHandler,
		handler.NewStatsHandler,
		handler.NewRouter,
		server.NewHTTPServer,
		NewApp,
	)
	return nil, nil
}
