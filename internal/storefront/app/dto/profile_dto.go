package dto

// Profile - профиль пользователя.
type Profile struct {
	ID          int64  `json:"id,omitempty"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// UpdateProfileRequest - изменяемые поля профиля.
type UpdateProfileRequest struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// AddAddressResponse - ответ на сохранение адреса.
type AddAddressResponse struct {
	OK      bool    `json:"ok"`
	Address Address `json:"address"`
}
