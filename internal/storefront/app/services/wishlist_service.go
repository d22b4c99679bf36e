package services

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/storefront/app/dto"
	"shopfront/internal/storefront/ports/api"
	"shopfront/internal/storefront/ports/services"
)

// Пути API избранного.
const (
	PathWishlist       = "/wishlist/"
	PathWishlistToggle = "/wishlist/toggle/%d/"
	PathWishlistRemove = "/wishlist/remove/%d/"
	PathWishlistCheck  = "/wishlist/check/%d/"
)

const (
	ErrorWishlistFailed       = "failed to update wishlist"
	ErrorUnknownToggleStatus  = "unknown wishlist toggle status"
	ErrorWishlistListFailed   = "failed to list wishlist"
	ErrorWishlistStatusFailed = "failed to check wishlist"
)

// WishlistServiceImpl реализует интерфейс WishlistService.
type WishlistServiceImpl struct {
	client api.Client
}

// NewWishlistService создает новый экземпляр сервиса избранного.
func NewWishlistService(client api.Client) services.WishlistService {
	return &WishlistServiceImpl{client: client}
}

func (s *WishlistServiceImpl) List(ctx context.Context) ([]dto.WishlistItem, error) {
	var items []dto.WishlistItem
	if err := s.client.Do(ctx, http.MethodGet, PathWishlist, nil, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorWishlistListFailed, err)
	}
	return items, nil
}

// Toggle добавляет товар в избранное или убирает его. Возвращает true, если товар добавлен.
func (s *WishlistServiceImpl) Toggle(ctx context.Context, productID int64) (bool, error) {
	if err := checkID("product id", productID); err != nil {
		return false, err
	}

	var resp dto.WishlistToggleResponse
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf(PathWishlistToggle, productID), nil, &resp); err != nil {
		return false, fmt.Errorf("%s: %w", ErrorWishlistFailed, err)
	}

	switch resp.Status {
	case dto.WishlistAdded:
		return true, nil
	case dto.WishlistRemoved:
		return false, nil
	default:
		return false, fmt.Errorf("%s: %q", ErrorUnknownToggleStatus, resp.Status)
	}
}

func (s *WishlistServiceImpl) Remove(ctx context.Context, productID int64) error {
	if err := checkID("product id", productID); err != nil {
		return err
	}
	if err := s.client.Do(ctx, http.MethodDelete, fmt.Sprintf(PathWishlistRemove, productID), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", ErrorWishlistFailed, err)
	}
	return nil
}

func (s *WishlistServiceImpl) Contains(ctx context.Context, productID int64) (bool, error) {
	if err := checkID("product id", productID); err != nil {
		return false, err
	}

	var status dto.WishlistStatus
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf(PathWishlistCheck, productID), nil, &status); err != nil {
		return false, fmt.Errorf("%s: %w", ErrorWishlistStatusFailed, err)
	}
	return status.IsWishlisted, nil
}
