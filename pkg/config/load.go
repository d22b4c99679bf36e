// Package config предоставляет загрузку конфигурации из YAML-файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"shopfront/pkg/logger"
)

// EnvConfigPath - переменная окружения с путем к файлу конфигурации.
const EnvConfigPath = "CONFIG_PATH"

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"

	errFailedReadFile = "failed to read config file"
	errFailedReadEnv  = "failed to read environment"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет T в порядке: значения по умолчанию, файл (path или CONFIG_PATH, если задан),
// переменные окружения поверх.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	log.Debug(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s %q: %w", errFailedReadFile, path, err)
		}
		// ReadConfig сам накладывает переменные окружения поверх файла.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s %q: %w", errFailedReadFile, path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errFailedReadEnv, err)
	}

	if v, ok := any(&cfg).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
	}

	log.Debug(ctx, msgConfigurationLoaded)

	return &cfg, nil
}

// ErrInvalidConfig возвращается, если загруженная конфигурация не прошла проверку.
var ErrInvalidConfig = errors.New("invalid configuration")
