package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"shopfront/pkg/logger"
)

const refreshFlightKey = "refresh"

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// refresh получает новый access-токен. С WithRefreshDeduplication одновременные
// вызовы разделяют один обмен; он не зависит от отмены контекста отдельного
// вызова, каждый вызов ждет результат только пока жив его собственный ctx.
func (c *Client) refresh(ctx context.Context) (string, error) {
	if c.refreshGroup == nil {
		return c.exchangeRefreshToken(ctx)
	}

	flight := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan(refreshFlightKey, func() (any, error) {
		return c.exchangeRefreshToken(flight)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// exchangeRefreshToken обменивает refresh-токен на access-токен и сохраняет его.
// Любой отказ сервера или транспорта удаляет сессию; отмена контекста - нет.
func (c *Client) exchangeRefreshToken(ctx context.Context) (string, error) {
	log := logger.Log(ctx).With(zap.String("path", c.refreshPath))

	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrorReadRefreshToken, err)
	}
	if refreshToken == "" {
		c.metrics.observeRefresh(refreshMissing)
		log.Warn(ctx, LogRefreshFailed, zap.Error(errNoRefreshToken))
		return "", c.expire(ctx, errNoRefreshToken, true)
	}

	body, err := json.Marshal(refreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrorEncodeBody, err)
	}

	p := &prepared{
		method: http.MethodPost,
		path:   c.refreshPath,
		body:   body,
		header: http.Header{},
	}

	resp, err := c.send(ctx, p, "")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return "", err
		}
		return "", c.failRefresh(ctx, log, err)
	}
	if !resp.OK() {
		return "", c.failRefresh(ctx, log, &HTTPError{
			Method:     p.method,
			Path:       p.path,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		})
	}

	var out refreshResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil || out.Access == "" {
		return "", c.failRefresh(ctx, log, ErrMalformedRefreshResponse)
	}

	if err := c.store.SetAccessToken(ctx, out.Access); err != nil {
		return "", fmt.Errorf("%s: %w", ErrorSaveAccessToken, err)
	}

	c.metrics.observeRefresh(refreshSuccess)
	log.Info(ctx, LogTokenRefreshed)
	return out.Access, nil
}

func (c *Client) failRefresh(ctx context.Context, log *logger.Logger, cause error) error {
	c.metrics.observeRefresh(refreshFailure)
	log.Warn(ctx, LogRefreshFailed, zap.Error(cause))
	return c.expire(ctx, cause, true)
}
