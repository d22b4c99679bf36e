// Package app собирает клиент витрины: хранилище сессии, клиент API и сервисы магазина.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	adapter "shopfront/internal/storefront/adapters/session"
	"shopfront/internal/storefront/apiclient"
	"shopfront/internal/storefront/app/services"
	"shopfront/internal/storefront/config"
	ports "shopfront/internal/storefront/ports/services"
	"shopfront/internal/storefront/ports/session"
	"shopfront/pkg/logger"
)

// Константы для сообщений.
const (
	LogSessionExpired       = "session expired"
	ErrorCreateSessionStore = "failed to create session store"
	ErrorCreateAPIClient    = "failed to create api client"
)

// App - собранный клиент витрины.
type App struct {
	Auth     ports.AuthService
	Cart     ports.CartService
	Orders   ports.OrderService
	Products ports.ProductService
	Wishlist ports.WishlistService
	Profile  ports.ProfileService

	Client   *apiclient.Client
	Store    session.Store
	Registry *prometheus.Registry
}

// New создает хранилище сессии по cfg.Session и клиент API по cfg.API.
// opts применяются к клиенту после настроек из конфигурации.
func New(ctx context.Context, cfg *config.Config, opts ...apiclient.Option) (*App, error) {
	log := logger.Log(ctx)

	store, err := adapter.NewStore(ctx, &cfg.Session)
	if err != nil {
		log.Error(ctx, ErrorCreateSessionStore, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorCreateSessionStore, err)
	}

	registry := prometheus.NewRegistry()
	base := []apiclient.Option{
		apiclient.WithMetrics(apiclient.NewMetrics(registry)),
		apiclient.WithAuthExpiredHandler(func(ctx context.Context, err error) {
			logger.Log(ctx).Warn(ctx, LogSessionExpired, zap.Error(err))
		}),
	}

	client, err := apiclient.NewFromConfig(&cfg.API, store, append(base, opts...)...)
	if err != nil {
		_ = store.Close()
		log.Error(ctx, ErrorCreateAPIClient, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorCreateAPIClient, err)
	}

	return &App{
		Auth:     services.NewAuthService(client, store),
		Cart:     services.NewCartService(client),
		Orders:   services.NewOrderService(client),
		Products: services.NewProductService(client),
		Wishlist: services.NewWishlistService(client),
		Profile:  services.NewProfileService(client),
		Client:   client,
		Store:    store,
		Registry: registry,
	}, nil
}

// Close освобождает хранилище сессии.
func (a *App) Close() error {
	return a.Store.Close()
}
