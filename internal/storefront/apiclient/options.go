package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"shopfront/internal/storefront/resilience"
)

// HTTPDoer - минимальный интерфейс транспорта; *http.Client ему удовлетворяет.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuthExpiredHandler вызывается при окончательном ErrAuthExpired.
// Это точка, где приложение отправляет пользователя на страницу входа.
type AuthExpiredHandler func(ctx context.Context, err error)

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient заменяет транспорт.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithTimeout задает общий таймаут запроса. Ноль оставляет таймаут транспорта по умолчанию.
// Перезаписывает транспорт, поэтому не сочетается с WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http = &http.Client{Timeout: timeout}
		}
	}
}

// WithRefreshPath задает путь обмена refresh-токена.
func WithRefreshPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.refreshPath = path
		}
	}
}

// WithAuthExpiredHandler задает обработчик окончательной потери сессии.
func WithAuthExpiredHandler(h AuthExpiredHandler) Option {
	return func(c *Client) {
		c.onAuthExpired = h
	}
}

// WithCircuitBreaker защищает транспорт circuit breaker'ом.
func WithCircuitBreaker(cb *resilience.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithMetrics включает счетчики prometheus.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithRefreshDeduplication объединяет одновременные обмены refresh-токена в один.
// Без этой опции каждый запрос, получивший 401, обновляет токен сам.
func WithRefreshDeduplication() Option {
	return func(c *Client) {
		c.refreshGroup = &singleflight.Group{}
	}
}

// WithDefaultHeader добавляет заголовок ко всем запросам.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// RequestOption настраивает отдельный запрос.
type RequestOption func(*prepared)

// WithHeader задает заголовок запроса.
func WithHeader(key, value string) RequestOption {
	return func(s *prepared) {
		s.header.Set(key, value)
	}
}

// WithQuery добавляет параметры строки запроса.
func WithQuery(values url.Values) RequestOption {
	return func(s *prepared) {
		for k, vs := range values {
			for _, v := range vs {
				s.query.Add(k, v)
			}
		}
	}
}

// WithoutRefresh отключает обновление токена для запроса: ответ 401 возвращается
// как *HTTPError, сессия не меняется. Нужен для входа, регистрации и сброса пароля.
func WithoutRefresh() RequestOption {
	return func(s *prepared) {
		s.noRefresh = true
	}
}
