package services

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"shopfront/internal/storefront/app/dto"
	"shopfront/internal/storefront/ports/api"
	"shopfront/internal/storefront/ports/services"
	"shopfront/pkg/logger"
)

// Пути API корзины.
const (
	PathCart           = "/cart/"
	PathAddToCart      = "/add-to-cart/%d/"
	PathUpdateCart     = "/update-cart/%d/"
	PathRemoveFromCart = "/remove-from-cart/%d/"
)

// Константы для логирования.
const (
	LogServiceCartAdd    = "cart service: add product"
	LogServiceCartUpdate = "cart service: update quantity"
	LogServiceCartRemove = "cart service: remove product"

	ErrorGetCartFailed    = "failed to get cart"
	ErrorAddToCartFailed  = "failed to add product to cart"
	ErrorUpdateCartFailed = "failed to update cart"
	ErrorRemoveFailed     = "failed to remove product from cart"
)

// CartServiceImpl реализует интерфейс CartService.
type CartServiceImpl struct {
	client api.Client
}

// NewCartService создает новый экземпляр сервиса корзины.
func NewCartService(client api.Client) services.CartService {
	return &CartServiceImpl{client: client}
}

// Get возвращает содержимое корзины.
func (s *CartServiceImpl) Get(ctx context.Context) (*dto.Cart, error) {
	var cart dto.Cart
	if err := s.client.Do(ctx, http.MethodGet, PathCart, nil, &cart); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetCartFailed, err)
	}
	return &cart, nil
}

// Add добавляет товар; повторное добавление увеличивает количество на единицу.
func (s *CartServiceImpl) Add(ctx context.Context, productID int64) (*dto.StatusResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceCartAdd, zap.Int64("product_id", productID))

	if err := checkID("product id", productID); err != nil {
		return nil, err
	}

	var resp dto.StatusResponse
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf(PathAddToCart, productID), nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorAddToCartFailed, err)
	}
	return &resp, nil
}

// Update задает количество товара в корзине.
func (s *CartServiceImpl) Update(ctx context.Context, productID int64, quantity int) (*dto.CartUpdateResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceCartUpdate,
		zap.Int64("product_id", productID), zap.Int("quantity", quantity))

	if err := checkID("product id", productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, invalid("quantity must be at least 1, got %d", quantity)
	}

	var resp dto.CartUpdateResponse
	err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf(PathUpdateCart, productID),
		&dto.UpdateCartRequest{Quantity: quantity}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateCartFailed, err)
	}
	return &resp, nil
}

// Remove удаляет товар из корзины.
func (s *CartServiceImpl) Remove(ctx context.Context, productID int64) (*dto.StatusResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceCartRemove, zap.Int64("product_id", productID))

	if err := checkID("product id", productID); err != nil {
		return nil, err
	}

	var resp dto.StatusResponse
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf(PathRemoveFromCart, productID), struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorRemoveFailed, err)
	}
	return &resp, nil
}
