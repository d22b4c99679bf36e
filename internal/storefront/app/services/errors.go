// Package services содержит реализации сервисов магазина поверх клиента API.
package services

import (
	"errors"
	"fmt"
)

// Ошибки сервисов.
var (
	// ErrInvalidInput возвращается до отправки запроса, если аргументы некорректны.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials - сервер отклонил имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMalformedLogin - ответ входа без пары токенов.
	ErrMalformedLogin = errors.New("login response has no token pair")
)

// Границы оценки отзыва.
const (
	MinRating = 1
	MaxRating = 5
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func checkID(name string, id int64) error {
	if id <= 0 {
		return invalid("%s must be positive, got %d", name, id)
	}
	return nil
}
