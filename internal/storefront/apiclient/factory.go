package apiclient

import (
	"shopfront/internal/storefront/config"
	"shopfront/internal/storefront/ports/session"
	"shopfront/internal/storefront/resilience"
)

// NewFromConfig создает клиент по настройкам cfg. Дополнительные opts применяются последними.
func NewFromConfig(cfg *config.APIConfig, store session.Store, opts ...Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithRefreshPath(cfg.RefreshPath),
	}
	if cfg.DedupRefresh {
		base = append(base, WithRefreshDeduplication())
	}
	if cfg.Breaker.Enabled {
		base = append(base, WithCircuitBreaker(resilience.NewCircuitBreaker("storefront-api", resilience.CircuitBreakerConfig{
			ErrorThreshold:   cfg.Breaker.ErrorThreshold,
			Timeout:          cfg.Breaker.Timeout,
			SuccessThreshold: cfg.Breaker.SuccessThreshold,
		})))
	}
	return New(cfg.BaseURL, store, append(base, opts...)...)
}
