package dto

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password2"`
}

// TokenPair - пара токенов, выданная при входе.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterResponse - ответ регистрации. Токены есть не у всех развертываний API.
type RegisterResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
	Access  string `json:"access,omitempty"`
	Refresh string `json:"refresh,omitempty"`
}

// PasswordResetRequest запрашивает письмо для сброса пароля.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest задает новый пароль по ссылке из письма.
type PasswordResetConfirmRequest struct {
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password2"`
}

// StatusResponse - типовой ответ вида {message, status|success}.
type StatusResponse struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
	Success bool   `json:"success,omitempty"`
}
