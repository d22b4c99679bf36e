package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"shopfront/internal/storefront/apiclient"
	"shopfront/internal/storefront/app/dto"
	"shopfront/internal/storefront/ports/api"
	"shopfront/internal/storefront/ports/services"
	"shopfront/internal/storefront/ports/session"
	"shopfront/pkg/logger"
)

// Пути API авторизации.
const (
	PathLogin                = "/login/"
	PathRegister             = "/register/"
	PathPasswordReset        = "/api/password_reset/"
	PathPasswordResetConfirm = "/api/password_reset_confirm/%s/%s/"
)

// Константы для логирования.
const (
	LogServiceLogin                = "auth service: login"
	LogServiceRegister             = "auth service: register"
	LogServiceLogout               = "auth service: logout"
	LogServicePasswordReset        = "auth service: request password reset"
	LogServicePasswordResetConfirm = "auth service: confirm password reset"

	ErrorLoginFailed         = "failed to login"
	ErrorRegisterFailed      = "failed to register user"
	ErrorLogoutFailed        = "failed to logout"
	ErrorSaveSessionFailed   = "failed to save session"
	ErrorPasswordResetFailed = "failed to reset password"
	ErrorReadSessionFailed   = "failed to read session"
)

// AuthServiceImpl реализует интерфейс AuthService.
type AuthServiceImpl struct {
	client api.Client
	store  session.Store
}

// NewAuthService создает новый экземпляр сервиса авторизации.
func NewAuthService(client api.Client, store session.Store) services.AuthService {
	return &AuthServiceImpl{
		client: client,
		store:  store,
	}
}

// Login выполняет вход и сохраняет выданную пару токенов.
// Прежняя сессия удаляется до запроса, чтобы устаревший токен не попал в заголовок.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) error {
	log := logger.Log(ctx).With(zap.String("username", req.Username))
	log.Info(ctx, LogServiceLogin)

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return invalid("username and password are required")
	}

	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrorLogoutFailed, err)
	}

	var tokens dto.TokenPair
	if err := s.client.Do(ctx, http.MethodPost, PathLogin, req, &tokens, apiclient.WithoutRefresh()); err != nil {
		if rejectedCredentials(err) {
			log.Warn(ctx, ErrorLoginFailed, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrorLoginFailed, errors.Join(ErrInvalidCredentials, err))
		}
		log.Error(ctx, ErrorLoginFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorLoginFailed, err)
	}

	if tokens.Access == "" || tokens.Refresh == "" {
		return fmt.Errorf("%s: %w", ErrorLoginFailed, ErrMalformedLogin)
	}

	if err := s.store.SaveSession(ctx, tokens.Access, tokens.Refresh); err != nil {
		log.Error(ctx, ErrorSaveSessionFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorSaveSessionFailed, err)
	}

	return nil
}

// rejectedCredentials распознает отказ во входе: 400 или 401 от формы входа.
func rejectedCredentials(err error) bool {
	httpErr, ok := apiclient.AsHTTPError(err)
	return ok && (httpErr.StatusCode == http.StatusBadRequest || httpErr.StatusCode == http.StatusUnauthorized)
}

// Register регистрирует пользователя. Если сервер сразу выдал токены, они сохраняются.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	log := logger.Log(ctx).With(zap.String("username", req.Username))
	log.Info(ctx, LogServiceRegister)

	if err := validateRegister(req); err != nil {
		return nil, err
	}

	var resp dto.RegisterResponse
	if err := s.client.Do(ctx, http.MethodPost, PathRegister, req, &resp, apiclient.WithoutRefresh()); err != nil {
		log.Error(ctx, ErrorRegisterFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorRegisterFailed, err)
	}

	if resp.Access != "" && resp.Refresh != "" {
		if err := s.store.SaveSession(ctx, resp.Access, resp.Refresh); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorSaveSessionFailed, err)
		}
	}

	return &resp, nil
}

func validateRegister(req *dto.RegisterRequest) error {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return invalid("username is required")
	case req.Password == "":
		return invalid("password is required")
	case req.Password != req.PasswordConfirm:
		return invalid("passwords do not match")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return invalid("email %q is not valid", req.Email)
	}
	return nil
}

// Logout удаляет сессию локально. Сервер о выходе не уведомляется.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogServiceLogout)

	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrorLogoutFailed, err)
	}
	return nil
}

// RequestPasswordReset просит сервер отправить письмо для сброса пароля.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) (*dto.StatusResponse, error) {
	logger.Log(ctx).Info(ctx, LogServicePasswordReset)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email %q is not valid", email)
	}

	var resp dto.StatusResponse
	if err := s.client.Do(ctx, http.MethodPost, PathPasswordReset, &dto.PasswordResetRequest{Email: email}, &resp,
		apiclient.WithoutRefresh()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorPasswordResetFailed, err)
	}
	return &resp, nil
}

// ConfirmPasswordReset задает новый пароль по uid и токену из письма.
func (s *AuthServiceImpl) ConfirmPasswordReset(
	ctx context.Context,
	uid, token string,
	req *dto.PasswordResetConfirmRequest,
) (*dto.StatusResponse, error) {
	logger.Log(ctx).Info(ctx, LogServicePasswordResetConfirm)

	switch {
	case uid == "" || token == "":
		return nil, invalid("uid and token are required")
	case req.NewPassword == "":
		return nil, invalid("new password is required")
	case req.NewPassword != req.NewPasswordConfirm:
		return nil, invalid("passwords do not match")
	}

	path := fmt.Sprintf(PathPasswordResetConfirm, url.PathEscape(uid), url.PathEscape(token))

	var resp dto.StatusResponse
	if err := s.client.Do(ctx, http.MethodPost, path, req, &resp, apiclient.WithoutRefresh()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorPasswordResetFailed, err)
	}
	return &resp, nil
}

// LoggedIn сообщает, есть ли сохраненный access-токен.
func (s *AuthServiceImpl) LoggedIn(ctx context.Context) (bool, error) {
	token, err := s.store.AccessToken(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrorReadSessionFailed, err)
	}
	return token != "", nil
}
