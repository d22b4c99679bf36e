// Package config содержит конфигурацию клиента витрины.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "shopfront/pkg/config"
	"shopfront/pkg/logger"
)

// ServiceName - имя, под которым клиент пишет логи загрузки конфигурации.
const ServiceName = "storefront"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "storefront configuration loaded"
	ErrFailedLoadConfig = "failed to load storefront configuration"
)

// Ошибки проверки конфигурации.
var (
	ErrEmptyBaseURL       = errors.New("api base url is empty")
	ErrUnknownBackend     = errors.New("unknown session backend")
	ErrEmptySessionFile   = errors.New("session file path is empty")
	ErrNegativeThresholds = errors.New("circuit breaker thresholds must be positive")
)

// Config представляет полную конфигурацию клиента.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load загружает конфигурацию из файла path (может быть пустым) и переменных окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Debug(ctx, LogConfigLoaded,
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("refresh_path", cfg.API.RefreshPath),
		zap.Duration("api_timeout", cfg.API.Timeout),
		zap.String("session_backend", cfg.Session.Backend),
		zap.String("log_level", cfg.Logging.Level))

	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrEmptyBaseURL
	}
	if c.API.Breaker.Enabled && (c.API.Breaker.ErrorThreshold <= 0 || c.API.Breaker.SuccessThreshold <= 0) {
		return ErrNegativeThresholds
	}
	switch c.Session.Backend {
	case BackendMemory, BackendRedis:
	case BackendFile:
		if c.Session.FilePath == "" {
			return ErrEmptySessionFile
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Session.Backend)
	}
	return nil
}
