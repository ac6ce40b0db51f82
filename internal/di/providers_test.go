package di

import (
	"context"
	"testing"

	"github.com/park285/pharmacist-relay-go/internal/config"
)

func TestProvideLogger(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "debug"}}
	logger, err := ProvideLogger(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger")
	}
}

func TestProvideTelemetryDisabled(t *testing.T) {
	provider, err := ProvideTelemetry(&config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.IsEnabled() {
		t.Fatalf("expected disabled provider")
	}
}

func TestAppCloseTolerant(t *testing.T) {
	var nilApp *App
	nilApp.Close(context.Background())

	provider, err := ProvideTelemetry(&config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app := NewApp(nil, nil, &config.Config{}, provider)
	app.Close(context.Background())
}
