package config

import "time"

// ShutdownConfig представляет конфигурацию для корректного завершения работы.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"STUBAPI_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}
