package services

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"shopfront/internal/storefront/app/dto"
	"shopfront/internal/storefront/ports/api"
	"shopfront/internal/storefront/ports/services"
)

// Пути API профиля.
const (
	PathUserProfile    = "/user-profile/"
	PathUpdateProfile  = "/update-profile/"
	PathSavedAddresses = "/saved-addresses/"
	PathAddAddress     = "/add-address/"
	PathDeleteAddress  = "/delete-address/%d/"
)

const (
	ErrorGetProfileFailed    = "failed to get user profile"
	ErrorUpdateProfileFailed = "failed to update user profile"
	ErrorAddressesFailed     = "failed to manage saved addresses"
)

// ProfileServiceImpl реализует интерфейс ProfileService.
type ProfileServiceImpl struct {
	client api.Client
}

// NewProfileService создает новый экземпляр сервиса профиля.
func NewProfileService(client api.Client) services.ProfileService {
	return &ProfileServiceImpl{client: client}
}

func (s *ProfileServiceImpl) Get(ctx context.Context) (*dto.Profile, error) {
	var profile dto.Profile
	if err := s.client.Do(ctx, http.MethodGet, PathUserProfile, nil, &profile); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetProfileFailed, err)
	}
	return &profile, nil
}

// Update заменяет поля профиля. Если сервер не вернул профиль, возвращаются отправленные значения.
func (s *ProfileServiceImpl) Update(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.Profile, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, invalid("username is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, invalid("email %q is not valid", req.Email)
	}

	profile := dto.Profile{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.client.Do(ctx, http.MethodPut, PathUpdateProfile, req, &profile); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateProfileFailed, err)
	}
	return &profile, nil
}

func (s *ProfileServiceImpl) Addresses(ctx context.Context) ([]dto.Address, error) {
	var addresses []dto.Address
	if err := s.client.Do(ctx, http.MethodGet, PathSavedAddresses, nil, &addresses); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorAddressesFailed, err)
	}
	return addresses, nil
}

func (s *ProfileServiceImpl) AddAddress(ctx context.Context, address *dto.Address) (*dto.AddAddressResponse, error) {
	if err := validateShipping(&dto.ShippingAddress{Address: *address}); err != nil {
		return nil, err
	}

	var resp dto.AddAddressResponse
	if err := s.client.Do(ctx, http.MethodPost, PathAddAddress, address, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorAddressesFailed, err)
	}
	return &resp, nil
}

func (s *ProfileServiceImpl) DeleteAddress(ctx context.Context, addressID int64) error {
	if err := checkID("address id", addressID); err != nil {
		return err
	}
	if err := s.client.Do(ctx, http.MethodDelete, fmt.Sprintf(PathDeleteAddress, addressID), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", ErrorAddressesFailed, err)
	}
	return nil
}
