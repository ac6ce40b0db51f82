package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/park285/pharmacist-relay-go/internal/config"
	"github.com/park285/pharmacist-relay-go/internal/di"
	"github.com/park285/pharmacist-relay-go/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app, err := di.InitializeApp()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	config.LogEnvStatus(app.Config, app.Logger)
	app.Logger.Info(
		"relay_config",
		"host", app.Config.HTTP.Host,
		"port", app.Config.HTTP.Port,
		"http2", app.Config.HTTP.HTTP2Enabled,
		"model", app.Config.Gemini.Model,
	)

	runErr := server.Run(context.Background(), app.Logger, app.Server, shutdownTimeout)

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	app.Close(closeCtx)
	cancel()

	if runErr != nil {
		app.Logger.Error("http_server_failed", "err", runErr)
		os.Exit(1)
	}
}
