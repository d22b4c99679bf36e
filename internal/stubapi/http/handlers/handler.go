// Package handlers содержит HTTP обработчики тестового API магазина.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"shopfront/internal/stubapi/http/middleware"
	"shopfront/internal/stubapi/shop"
	"shopfront/internal/stubapi/tokens"
	"shopfront/pkg/logger"
)

// Константы для логирования и ответов.
const (
	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"

	DetailNotFound      = "Not found."
	DetailInternalError = "Internal Server Error"
)

// TokenIssuer выпускает пары токенов и обменивает refresh-токен на access.
type TokenIssuer interface {
	IssuePair(ctx context.Context, userID int64) (*tokens.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// ResetNotifier доставляет ссылку сброса пароля вместо почты.
type ResetNotifier func(ctx context.Context, email, uid, token string)

// Handler содержит HTTP обработчики магазина.
type Handler struct {
	store   *shop.Store
	issuer  TokenIssuer
	onReset ResetNotifier
}

// NewHandler создает новый экземпляр обработчика. onReset может быть nil:
// тогда ссылка сброса только пишется в лог.
func NewHandler(store *shop.Store, issuer TokenIssuer, onReset ResetNotifier) *Handler {
	if onReset == nil {
		onReset = logResetLink
	}
	return &Handler{store: store, issuer: issuer, onReset: onReset}
}

func logResetLink(ctx context.Context, email, uid, token string) {
	logger.Log(ctx).Info(ctx, "password reset link issued",
		zap.String("email", email),
		zap.String("path", fmt.Sprintf("/api/password_reset_confirm/%s/%s/", uid, token)),
	)
}

func send(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendError(c fiber.Ctx, status int, message string) error {
	return send(c, status, fiber.Map{"error": message})
}

func sendDetail(c fiber.Ctx, status int, detail string) error {
	return send(c, status, fiber.Map{"detail": detail})
}

// bind разбирает тело запроса. При ошибке ответ 400 уже отправлен и ok false.
func bind(c fiber.Ctx, req any) (ok bool, err error) {
	if err := c.Bind().JSON(req); err != nil {
		ctx := middleware.RequestContext(c)
		logger.Log(ctx).Debug(ctx, ErrorInvalidRequest, zap.Error(err))
		return false, sendError(c, http.StatusBadRequest, ErrorInvalidRequest)
	}
	return true, nil
}

// pathID читает целочисленный параметр маршрута. Нечисловое значение дает 404,
// как конвертер <int:...> в URL-шаблоне.
func pathID(c fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// fail переводит ошибку магазина в HTTP ответ.
func fail(c fiber.Ctx, err error) error {
	ctx := middleware.RequestContext(c)

	switch {
	case shop.IsNotFound(err):
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	case errors.Is(err, shop.ErrOutOfStock),
		errors.Is(err, shop.ErrEmptyCart),
		errors.Is(err, shop.ErrNotInCart),
		errors.Is(err, shop.ErrInvalidQuantity),
		errors.Is(err, shop.ErrInvalidRating),
		errors.Is(err, shop.ErrDuplicateReview),
		errors.Is(err, shop.ErrInvalidAddress),
		errors.Is(err, shop.ErrInvalidResetToken),
		errors.Is(err, shop.ErrUserExists):
		logger.Log(ctx).Debug(ctx, ErrorFailedToServeRequest, zap.Error(err))
		return sendError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Log(ctx).Error(ctx, ErrorFailedToServeRequest, zap.Error(err))
		return sendDetail(c, http.StatusInternalServerError, DetailInternalError)
	}
}

// Health сообщает, что сервер запущен.
func (h *Handler) Health(c fiber.Ctx) error {
	return send(c, http.StatusOK, fiber.Map{"status": "ok"})
}
