package config

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey 는 GOOGLE_API_KEY(S)가 비어 있을 때 반환된다.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is not set in the environment variables")

var (
	configOnce  sync.Once
	configValue *Config
)

// Load 는 환경 변수 기반 설정을 로드한다.
func Load() *Config {
	configOnce.Do(func() {
		_ = godotenv.Load()
		configValue = buildConfig()
	})
	return configValue
}

// ProvideConfig 는 설정을 로드하고 검증한다.
func ProvideConfig() (*Config, error) {
	cfg := Load()
	if cfg == nil {
		return nil, errors.New("config not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 는 설정 유효성을 검사한다.
// API 키가 없으면 서버는 기동하지 않는다.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Gemini.PrimaryKey() == "" {
		return ErrMissingAPIKey
	}
	if c.Gemini.Model == "" {
		return errors.New("GEMINI_MODEL is empty")
	}
	return nil
}

// LogEnvStatus 는 환경 설정 상태를 로그로 남긴다.
func LogEnvStatus(cfg *Config, logger *slog.Logger) {
	if logger == nil || cfg == nil {
		return
	}

	logger.Debug(
		"env_status",
		"env_file", fileExists(".env"),
		"gemini_keys", len(cfg.Gemini.APIKeys),
		"primary_key", maskSecret(cfg.Gemini.PrimaryKey()),
		"model", cfg.Gemini.Model,
		"timeout", cfg.Gemini.TimeoutSeconds,
		"rate_limit_rpm", cfg.HTTPRateLimit.RequestsPerMinute,
		"otel_enabled", cfg.Telemetry.Enabled,
	)
}

func buildConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			APIKeys:         parseAPIKeys(),
			Model:           getEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL:         getEnvString("GEMINI_BASE_URL", ""),
			Temperature:     getEnvOptionalFloat("GEMINI_TEMPERATURE"),
			MaxOutputTokens: getEnvNonNegativeInt("GEMINI_MAX_TOKENS", 0),
			TimeoutSeconds:  getEnvNonNegativeInt("GEMINI_TIMEOUT_SECONDS", 0),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			LogDir:     getEnvString("LOG_DIR", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 10),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 10),
			MaxAgeDays: getEnvInt("LOG_FILE_MAX_AGE_DAYS", 7),
			Compress:   getEnvBool("LOG_FILE_COMPRESS", true),
		},
		HTTP: HTTPConfig{
			Host:           getEnvString("HTTP_HOST", "0.0.0.0"),
			Port:           getEnvInt("HTTP_PORT", 8000),
			HTTP2Enabled:   getEnvBool("HTTP2_ENABLED", false),
			GzipEnabled:    getEnvBool("HTTP_GZIP_ENABLED", true),
			TrustedProxies: splitKeys(os.Getenv("HTTP_TRUSTED_PROXIES")),
		},
		HTTPRateLimit: HTTPRateLimitConfig{
			RequestsPerMinute: getEnvNonNegativeInt("HTTP_RATE_LIMIT_RPM", 0),
			CacheSize:         max(1, getEnvNonNegativeInt("HTTP_RATE_LIMIT_CACHE_SIZE", 10000)),
			CacheTTLSeconds:   max(1, getEnvNonNegativeInt("HTTP_RATE_LIMIT_CACHE_TTL_SECONDS", 120)),
		},
		Telemetry: readTelemetryConfig(),
	}
}
