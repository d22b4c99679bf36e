package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Ошибки клиента.
var (
	// ErrAuthExpired означает, что действующей сессии нет и восстановить ее не удалось.
	// Вызывающий код должен отправить пользователя на вход.
	ErrAuthExpired = errors.New("authentication expired")
	// ErrNetwork сопоставляется через errors.Is с любым *NetworkError.
	ErrNetwork = errors.New("network error")

	ErrNilStore                 = errors.New("session store is nil")
	ErrInvalidBaseURL           = errors.New("invalid base url")
	ErrMalformedRefreshResponse = errors.New("refresh response has no access token")
	ErrEmptyResponseBody        = errors.New("response body is empty")

	errNoRefreshToken     = errors.New("no refresh token in session")
	errRejectedAfterRetry = errors.New("request rejected again after token refresh")
)

// Константы сообщений об ошибках.
const (
	ErrorEncodeBody       = "failed to encode request body"
	ErrorBuildRequest     = "failed to build request"
	ErrorReadAccessToken  = "failed to read access token"
	ErrorReadRefreshToken = "failed to read refresh token"
	ErrorSaveAccessToken  = "failed to save refreshed access token"
	ErrorDecodeResponse   = "failed to decode response body"
)

// NetworkError описывает сбой транспорта: ответ от сервера не получен.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is позволяет проверять errors.Is(err, ErrNetwork).
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// HTTPError - ответ с кодом вне диапазона 2xx, который клиент не восстанавливает сам.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if d := e.Detail(); d != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, d)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Detail извлекает человекочитаемое сообщение из тела ответа, если сервер его прислал.
// Поддерживаются поля detail, message и error.
func (e *HTTPError) Detail() string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}
	for _, s := range []string{body.Detail, body.Message, body.Error} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// IsAuthExpired сообщает, требует ли ошибка повторного входа.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

// AsHTTPError извлекает *HTTPError из цепочки ошибок.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

func authExpired(cause error) error {
	return fmt.Errorf("%w: %w", ErrAuthExpired, cause)
}
