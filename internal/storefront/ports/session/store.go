// Package session определяет порт хранилища токенов сессии.
package session

import "context"

// Фиксированные имена, под которыми хранятся токены.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// Store хранит пару токенов между запусками клиента.
// Отсутствующий токен возвращается как пустая строка без ошибки.
type Store interface {
	AccessToken(ctx context.Context) (string, error)

	SetAccessToken(ctx context.Context, token string) error

	RefreshToken(ctx context.Context) (string, error)

	// SaveSession сохраняет обе части сессии после входа или регистрации.
	SaveSession(ctx context.Context, accessToken, refreshToken string) error

	// ClearSession удаляет оба токена.
	ClearSession(ctx context.Context) error

	Close() error
}
