package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shopfront/internal/storefront/config"
	"shopfront/internal/storefront/ports/session"
	"shopfront/pkg/db/redis"
	"shopfront/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet   = "get"
	LogMethodSet   = "set"
	LogMethodClear = "clear"

	ErrorFailedToGet   = "failed to get token from redis"
	ErrorFailedToSet   = "failed to set token in redis"
	ErrorFailedToClear = "failed to clear session in redis"
	ErrorFailedToClose = "failed to close redis connection"
)

// RedisStore хранит токены в Redis под ключами <prefix>accessToken и <prefix>refreshToken.
// Срок жизни ключам не задается: истечение токена клиент узнает только по ответу 401.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ session.Store = (*RedisStore)(nil)

// NewRedisStore подключается к Redis по настройкам cfg.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	client, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.GetAddressString(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis session store: %w", err)
	}

	return &RedisStore{client: client, prefix: cfg.KeyPrefix}, nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) get(ctx context.Context, name string) (string, error) {
	value, err := s.client.Get(ctx, s.key(name))
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToGet,
			zap.String("method", LogMethodGet), zap.String("key", s.key(name)), zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, nil
}

func (s *RedisStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, session.AccessTokenKey)
}

func (s *RedisStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, session.RefreshTokenKey)
}

func (s *RedisStore) SetAccessToken(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key(session.AccessTokenKey), token, 0); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet, zap.String("method", LogMethodSet), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

func (s *RedisStore) SaveSession(ctx context.Context, accessToken, refreshToken string) error {
	err := s.client.SetMany(ctx, map[string]string{
		s.key(session.AccessTokenKey):  accessToken,
		s.key(session.RefreshTokenKey): refreshToken,
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet, zap.String("method", LogMethodSet), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

func (s *RedisStore) ClearSession(ctx context.Context) error {
	if err := s.client.Delete(ctx, s.key(session.AccessTokenKey), s.key(session.RefreshTokenKey)); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToClear, zap.String("method", LogMethodClear), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToClear, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
