// Package tokens выпускает и проверяет JWT-токены тестового магазина
// в формате simplejwt: пара access/refresh с полем token_type.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopfront/pkg/logger"
)

// Типы токенов.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Ошибки токенов.
var (
	ErrInvalidToken     = errors.New("token is invalid")
	ErrExpiredToken     = errors.New("token has expired")
	ErrWrongTokenType   = errors.New("wrong token type")
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrEmptySecret      = errors.New("empty secret key")
)

const (
	msgTokenIssued   = "token issued"
	msgTokenRejected = "token rejected"
	errSigningToken  = "error signing token" //nolint:gosec
)

// Claims - полезная нагрузка токена.
type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair - выданная при входе пара токенов.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issuer подписывает токены HS256.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer создает Issuer. now задает часы; nil означает time.Now.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
	}, nil
}

// IssuePair выдает пару токенов пользователю.
func (i *Issuer) IssuePair(ctx context.Context, userID int64) (*Pair, error) {
	access, err := i.sign(ctx, userID, TypeAccess, i.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := i.sign(ctx, userID, TypeRefresh, i.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

// Refresh выдает новый access-токен по действующему refresh-токену.
func (i *Issuer) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := i.parse(ctx, refreshToken, TypeRefresh)
	if err != nil {
		return "", err
	}
	return i.sign(ctx, claims.UserID, TypeAccess, i.accessTTL)
}

// ValidateAccess проверяет access-токен и возвращает идентификатор пользователя.
func (i *Issuer) ValidateAccess(ctx context.Context, accessToken string) (int64, error) {
	claims, err := i.parse(ctx, accessToken, TypeAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (i *Issuer) sign(ctx context.Context, userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		logger.Log(ctx).Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errSigningToken, err)
	}

	logger.Log(ctx).Debug(ctx, msgTokenIssued,
		zap.Int64("user_id", userID), zap.String("token_type", tokenType))
	return signed, nil
}

func (i *Issuer) parse(ctx context.Context, tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil {
		logger.Log(ctx).Debug(ctx, msgTokenRejected, zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: want %s, got %q", ErrWrongTokenType, wantType, claims.TokenType)
	}
	return claims, nil
}
