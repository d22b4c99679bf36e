// Package api определяет порт клиента API магазина.
package api

import (
	"context"

	"shopfront/internal/storefront/apiclient"
)

// Client выполняет аутентифицированные запросы к API магазина.
type Client interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...apiclient.RequestOption) error
}
