package config

import "time"

// DefaultBaseURL - развернутый API магазина.
const DefaultBaseURL = "https://djangoecommrce.vercel.app"

// APIConfig представляет настройки удаленного API магазина.
type APIConfig struct {
	BaseURL     string `yaml:"base_url" env:"STOREFRONT_API_URL" env-default:"https://djangoecommrce.vercel.app"`
	RefreshPath string `yaml:"refresh_path" env:"STOREFRONT_API_REFRESH_PATH" env-default:"/api/token/refresh/"`
	// Timeout равный нулю оставляет таймаут транспорта по умолчанию.
	Timeout      time.Duration `yaml:"timeout" env:"STOREFRONT_API_TIMEOUT" env-default:"0s"`
	DedupRefresh bool          `yaml:"dedup_refresh" env:"STOREFRONT_API_DEDUP_REFRESH" env-default:"false"`
	Breaker      BreakerConfig `yaml:"breaker"`
}

// BreakerConfig представляет настройки circuit breaker исходящих запросов.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled" env:"STOREFRONT_BREAKER_ENABLED" env-default:"false"`
	ErrorThreshold   int           `yaml:"error_threshold" env:"STOREFRONT_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	SuccessThreshold int           `yaml:"success_threshold" env:"STOREFRONT_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
	Timeout          time.Duration `yaml:"timeout" env:"STOREFRONT_BREAKER_TIMEOUT" env-default:"10s"`
}
