// Package passwords хэширует пароли пользователей тестового магазина.
package passwords

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Ошибки паролей.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
)

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 6

const (
	errMsgErrorComparingHash = "error comparing password with hash"
	errMsgPasswordTooShort   = "password is too short"
)

// Bcrypt хэширует пароли алгоритмом bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt создает хэшер. Стоимость ниже bcrypt.MinCost заменяется на bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash хэширует пароль.
func (s *Bcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%s: %w", errMsgPasswordTooShort, ErrInvalidPassword)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify проверяет соответствие пароля хэшу.
func (s *Bcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" {
		return false, ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}
	return true, nil
}
