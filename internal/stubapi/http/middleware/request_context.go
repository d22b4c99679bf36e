// Package middleware содержит промежуточное ПО HTTP сервера тестового API.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"shopfront/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-Id"

const localRequestID = "request_id"

// RequestContext возвращает контекст запроса с идентификатором из заголовка X-Request-Id.
func RequestContext(c fiber.Ctx) context.Context {
	id, _ := c.Locals(localRequestID).(string)
	if id == "" {
		id = c.Get(HeaderRequestID)
	}
	return logger.NewRequestIDContext(c.Context(), id)
}

// NewRequestIDMiddleware назначает запросу идентификатор и возвращает его в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = logger.GenerateRequestID()
		}
		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}
