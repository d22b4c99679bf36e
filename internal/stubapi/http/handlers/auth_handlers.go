package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"shopfront/internal/stubapi/http/middleware"
	"shopfront/internal/stubapi/passwords"
	"shopfront/internal/stubapi/shop"
	"shopfront/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "auth handler: register"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerRefreshTokens = "auth handler: refresh token" // #nosec G101 - not a credential
	LogHandlerPasswordReset = "auth handler: password reset"

	DetailNoActiveAccount = "No active account found with the given credentials"
	DetailTokenInvalid    = "Token is invalid or expired"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password2"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirmRequest struct {
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password2"`
}

// Login обменивает имя пользователя и пароль на пару токенов.
func (h *Handler) Login(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx)
	log.Info(ctx, LogHandlerLogin)

	var req loginRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return sendError(c, http.StatusBadRequest, "username and password are required")
	}

	user, err := h.store.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn(ctx, DetailNoActiveAccount, zap.String("username", req.Username))
		return sendDetail(c, http.StatusUnauthorized, DetailNoActiveAccount)
	}

	pair, err := h.issuer.IssuePair(ctx, user.ID)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, pair)
}

// Register создает пользователя и сразу выдает ему токены.
func (h *Handler) Register(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Info(ctx, LogHandlerRegister)

	var req registerRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return sendError(c, http.StatusBadRequest, "email, username and password are required")
	}
	if req.Password != req.PasswordConfirm {
		return sendError(c, http.StatusBadRequest, "Passwords do not match")
	}

	user, err := h.store.Register(ctx, req.Username, req.Email, req.PhoneNumber, req.Password)
	if err != nil {
		if errors.Is(err, passwords.ErrInvalidPassword) {
			return sendError(c, http.StatusBadRequest, err.Error())
		}
		return fail(c, err)
	}

	pair, err := h.issuer.IssuePair(ctx, user.ID)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusCreated, fiber.Map{
		"message": "User registered successfully",
		"status":  "success",
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// RefreshToken выдает новый access-токен. Ответы повторяют simplejwt.
func (h *Handler) RefreshToken(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx)
	log.Info(ctx, LogHandlerRefreshTokens)

	var req refreshRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.Refresh == "" {
		return send(c, http.StatusBadRequest, fiber.Map{"refresh": []string{"This field is required."}})
	}

	access, err := h.issuer.Refresh(ctx, req.Refresh)
	if err != nil {
		log.Debug(ctx, DetailTokenInvalid, zap.Error(err))
		return send(c, http.StatusUnauthorized, fiber.Map{
			"detail": DetailTokenInvalid,
			"code":   middleware.CodeTokenNotValid,
		})
	}
	return send(c, http.StatusOK, fiber.Map{"access": access})
}

// PasswordReset отправляет ссылку сброса. Ответ не раскрывает, существует ли адрес.
func (h *Handler) PasswordReset(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Info(ctx, LogHandlerPasswordReset)

	var req passwordResetRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.Email == "" {
		return sendError(c, http.StatusBadRequest, "email is required")
	}

	if uid, token, ok := h.store.RequestPasswordReset(req.Email); ok {
		h.onReset(ctx, req.Email, uid, token)
	}
	return send(c, http.StatusOK, fiber.Map{
		"message": "If an account with that email exists, a password reset link has been sent.",
		"success": true,
	})
}

// PasswordResetConfirm задает новый пароль по ссылке.
func (h *Handler) PasswordResetConfirm(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)

	var req passwordResetConfirmRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.NewPassword == "" || req.NewPassword != req.NewPasswordConfirm {
		return sendError(c, http.StatusBadRequest, "Passwords do not match")
	}

	err := h.store.ConfirmPasswordReset(ctx, c.Params("uid"), c.Params("token"), req.NewPassword)
	switch {
	case errors.Is(err, shop.ErrInvalidResetToken):
		return sendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, passwords.ErrInvalidPassword):
		return sendError(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return fail(c, err)
	}
	return send(c, http.StatusOK, fiber.Map{"message": "Password has been reset successfully.", "success": true})
}
