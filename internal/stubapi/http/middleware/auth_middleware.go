package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"shopfront/pkg/logger"
)

// Ответы 401 в формате Django REST framework.
const (
	DetailNoCredentials = "Authentication credentials were not provided."
	DetailInvalidToken  = "Given token not valid for any token type"
	CodeTokenNotValid   = "token_not_valid"
)

const localUserID = "user_id"

// AccessValidator проверяет access-токен.
type AccessValidator interface {
	ValidateAccess(ctx context.Context, token string) (int64, error)
}

// NewAuthMiddleware пропускает только запросы с действующим access-токеном.
func NewAuthMiddleware(validator AccessValidator) fiber.Handler {
	return authenticate(validator, true)
}

// NewOptionalAuthMiddleware пропускает анонимные запросы, но, как и DRF,
// отклоняет запрос с недействительным токеном даже на открытых маршрутах.
func NewOptionalAuthMiddleware(validator AccessValidator) fiber.Handler {
	return authenticate(validator, false)
}

func authenticate(validator AccessValidator, required bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := RequestContext(c)
		log := logger.Log(ctx).With(zap.String("middleware", "auth"))

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			if !required {
				return c.Next()
			}
			log.Debug(ctx, DetailNoCredentials)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": DetailNoCredentials})
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			log.Debug(ctx, DetailInvalidToken)
			return invalidToken(c)
		}

		userID, err := validator.ValidateAccess(ctx, token)
		if err != nil {
			log.Debug(ctx, DetailInvalidToken, zap.Error(err))
			return invalidToken(c)
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}

func invalidToken(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": DetailInvalidToken,
		"code":   CodeTokenNotValid,
	})
}

// UserID возвращает аутентифицированного пользователя или 0 для анонимного запроса.
func UserID(c fiber.Ctx) int64 {
	id, _ := c.Locals(localUserID).(int64)
	return id
}
