package session

import (
	"context"
	"fmt"

	"shopfront/internal/storefront/config"
	"shopfront/internal/storefront/ports/session"
)

// NewStore создает хранилище, выбранное в конфигурации.
func NewStore(ctx context.Context, cfg *config.SessionConfig) (session.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.FilePath), nil
	case config.BackendRedis:
		store, err := NewRedisStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
