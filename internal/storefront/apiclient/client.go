// Package apiclient реализует HTTP-клиент API магазина с bearer-токеном
// и однократным прозрачным обновлением токена при ответе 401.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"shopfront/internal/storefront/ports/session"
	"shopfront/internal/storefront/resilience"
	"shopfront/pkg/logger"
)

// DefaultRefreshPath - эндпоинт обмена refresh-токена на новый access-токен.
const DefaultRefreshPath = "/api/token/refresh/"

// maxRefreshAttempts ограничивает число обновлений токена на один исходный запрос.
const maxRefreshAttempts = 1

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerRequestID     = "X-Request-Id"

	bearerPrefix    = "Bearer "
	contentTypeJSON = "application/json"
)

// Константы для логирования.
const (
	LogSendRequest     = "sending api request"
	LogTokenRejected   = "access token rejected, refreshing"
	LogTokenRefreshed  = "access token refreshed"
	LogRefreshFailed   = "token refresh failed, session cleared"
	LogRetryRejected   = "request rejected after token refresh"
	LogClearSessionErr = "failed to clear session"
)

// Client выполняет запросы к одному базовому адресу API.
// Безопасен для одновременного использования.
type Client struct {
	baseURL     *url.URL
	refreshPath string
	http        HTTPDoer
	store       session.Store
	headers     http.Header

	breaker       *resilience.CircuitBreaker
	refreshGroup  *singleflight.Group
	metrics       *Metrics
	onAuthExpired AuthExpiredHandler
}

// New создает клиент для baseURL, хранящий токены в store.
func New(baseURL string, store session.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:     u,
		refreshPath: DefaultRefreshPath,
		http:        &http.Client{},
		store:       store,
		headers:     http.Header{},
	}
	c.headers.Set(headerContentType, contentTypeJSON)
	c.headers.Set(headerAccept, contentTypeJSON)

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL возвращает базовый адрес API.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Store возвращает хранилище сессии клиента.
func (c *Client) Store() session.Store {
	return c.store
}

// prepared - неизменяемое описание запроса, пригодное для повторной отправки.
type prepared struct {
	method    string
	path      string
	body      []byte
	header    http.Header
	query     url.Values
	noRefresh bool
}

// Request отправляет запрос и возвращает ответ с кодом 2xx.
// body кодируется в JSON; []byte и json.RawMessage отправляются как есть.
// Ошибки: ErrAuthExpired, *NetworkError, *HTTPError.
func (c *Client) Request(
	ctx context.Context,
	method, path string,
	body any,
	opts ...RequestOption,
) (*Response, error) {
	p, err := newPrepared(method, path, body, opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.execute(ctx, p)
	c.metrics.observeRequest(p.method, err)
	return resp, err
}

// Do выполняет Request и декодирует тело ответа в out, если out не nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	resp, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	return resp.Decode(out)
}

func newPrepared(method, path string, body any, opts []RequestOption) (*prepared, error) {
	if _, rawQuery, ok := strings.Cut(path, "?"); ok {
		if _, err := url.ParseQuery(rawQuery); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorBuildRequest, err)
		}
	}

	p := &prepared{
		method: strings.ToUpper(method),
		path:   path,
		header: http.Header{},
		query:  url.Values{},
	}

	switch b := body.(type) {
	case nil:
	case []byte:
		p.body = b
	case json.RawMessage:
		p.body = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorEncodeBody, err)
		}
		p.body = data
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (c *Client) execute(ctx context.Context, p *prepared) (*Response, error) {
	token, err := c.store.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorReadAccessToken, err)
	}
	return c.attempt(ctx, p, token, 0)
}

// attempt отправляет p с token; refreshes - сколько раз токен уже обновлялся
// ради этого запроса.
func (c *Client) attempt(ctx context.Context, p *prepared, token string, refreshes int) (*Response, error) {
	resp, err := c.send(ctx, p, token)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.OK():
		return resp, nil
	case resp.StatusCode == http.StatusUnauthorized && p.noRefresh:
		return nil, &HTTPError{
			Method:     p.method,
			Path:       p.path,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	case resp.StatusCode == http.StatusUnauthorized && refreshes < maxRefreshAttempts:
		logger.Log(ctx).Info(ctx, LogTokenRejected,
			zap.String("method", p.method), zap.String("path", p.path))

		newToken, err := c.refresh(ctx)
		if err != nil {
			return nil, err
		}
		return c.attempt(ctx, p, newToken, refreshes+1)
	case resp.StatusCode == http.StatusUnauthorized:
		logger.Log(ctx).Warn(ctx, LogRetryRejected,
			zap.String("method", p.method), zap.String("path", p.path))
		return nil, c.expire(ctx, errRejectedAfterRetry, false)
	default:
		return nil, &HTTPError{
			Method:     p.method,
			Path:       p.path,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	}
}

// send выполняет один HTTP-обмен. Тело ответа читается полностью.
func (c *Client) send(ctx context.Context, p *prepared, token string) (*Response, error) {
	target := c.resolve(p)

	var body io.Reader
	if p.body != nil {
		body = bytes.NewReader(p.body)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorBuildRequest, err)
	}

	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range p.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	if token != "" {
		req.Header.Set(headerAuthorization, bearerPrefix+token)
	}
	if id, ok := logger.GetRequestID(ctx); ok {
		req.Header.Set(headerRequestID, id)
	}

	logger.Log(ctx).Debug(ctx, LogSendRequest,
		zap.String("method", p.method),
		zap.String("url", target),
		zap.Bool("authorized", token != ""))

	var httpResp *http.Response
	do := func() error {
		var doErr error
		httpResp, doErr = c.http.Do(req)
		return doErr
	}

	if c.breaker != nil {
		err = c.breaker.Execute(ctx, do)
	} else {
		err = do()
	}
	if err != nil {
		return nil, &NetworkError{Method: p.method, URL: target, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Method: p.method, URL: target, Err: err}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}

// resolve склеивает базовый адрес с путем запроса, сохраняя экранирование пути.
func (c *Client) resolve(p *prepared) string {
	path, rawQuery, _ := strings.Cut(p.path, "?")
	target := c.baseURL.String() + "/" + strings.TrimLeft(path, "/")

	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Строка запроса уходит как есть, дополнительные параметры дописываются.
		if extra := p.query.Encode(); extra != "" {
			rawQuery = strings.Join([]string{rawQuery, extra}, "&")
		}
		return target + "?" + rawQuery
	}
	for k, vs := range p.query {
		q[k] = append(q[k], vs...)
	}
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

// expire завершает запрос ошибкой ErrAuthExpired, при clear удаляя сессию,
// и сообщает об этом обработчику.
func (c *Client) expire(ctx context.Context, cause error, clear bool) error {
	err := authExpired(cause)

	if clear {
		if clearErr := c.store.ClearSession(ctx); clearErr != nil {
			logger.Log(ctx).Error(ctx, LogClearSessionErr, zap.Error(clearErr))
			err = fmt.Errorf("%w (%s: %w)", err, LogClearSessionErr, clearErr)
		}
	}

	if c.onAuthExpired != nil {
		c.onAuthExpired(ctx, err)
	}
	return err
}
