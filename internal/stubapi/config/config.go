// Package config содержит конфигурацию тестового API магазина.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "shopfront/pkg/config"
	"shopfront/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "stubapi"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "stub api configuration loaded"
	ErrFailedLoadConfig = "failed to load stub api configuration"
)

// Ошибки проверки конфигурации.
var (
	ErrEmptySecret = errors.New("jwt secret key is empty")
	ErrInvalidTTL  = errors.New("token ttl must be positive and access ttl shorter than refresh ttl")
	ErrInvalidPort = errors.New("http port is out of range")
)

// Config представляет полную конфигурацию тестового API.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла path (может быть пустым) и переменных окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Duration("access_token_ttl", cfg.JWT.AccessTokenTTL),
		zap.Duration("refresh_token_ttl", cfg.JWT.RefreshTokenTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return ErrEmptySecret
	}
	if c.JWT.AccessTokenTTL <= 0 || c.JWT.RefreshTokenTTL <= c.JWT.AccessTokenTTL {
		return ErrInvalidTTL
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.HTTP.Port)
	}
	return nil
}
