package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"shopfront/internal/storefront/app/dto"
	"shopfront/internal/storefront/ports/api"
	"shopfront/internal/storefront/ports/services"
	"shopfront/pkg/logger"
)

// Пути API заказов.
const (
	PathCheckout = "/checkout/"
	PathBuyNow   = "/buy-now-checkout/"
	PathOrders   = "/orders/"
	PathOrder    = "/orders/%d/"
)

// Константы для логирования.
const (
	LogServiceCheckout = "order service: checkout"
	LogServiceBuyNow   = "order service: buy now"

	ErrorCheckoutFailed   = "failed to place order"
	ErrorListOrdersFailed = "failed to list orders"
	ErrorGetOrderFailed   = "failed to get order"
)

// OrderServiceImpl реализует интерфейс OrderService.
type OrderServiceImpl struct {
	client api.Client
}

// NewOrderService создает новый экземпляр сервиса заказов.
func NewOrderService(client api.Client) services.OrderService {
	return &OrderServiceImpl{client: client}
}

// Checkout оформляет заказ из содержимого корзины.
func (s *OrderServiceImpl) Checkout(ctx context.Context, address *dto.ShippingAddress) (*dto.CheckoutResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceCheckout)

	if err := validateShipping(address); err != nil {
		return nil, err
	}

	var resp dto.CheckoutResponse
	err := s.client.Do(ctx, http.MethodPost, PathCheckout, &dto.CheckoutRequest{ShippingAddress: *address}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCheckoutFailed, err)
	}
	return &resp, nil
}

// BuyNow оформляет заказ на один товар, минуя корзину.
func (s *OrderServiceImpl) BuyNow(
	ctx context.Context,
	productID int64,
	quantity int,
	address *dto.ShippingAddress,
) (*dto.CheckoutResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceBuyNow,
		zap.Int64("product_id", productID), zap.Int("quantity", quantity))

	if err := checkID("product id", productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, invalid("quantity must be at least 1, got %d", quantity)
	}
	if err := validateShipping(address); err != nil {
		return nil, err
	}

	req := &dto.BuyNowRequest{ProductID: productID, Quantity: quantity, ShippingAddress: *address}

	var resp dto.CheckoutResponse
	if err := s.client.Do(ctx, http.MethodPost, PathBuyNow, req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCheckoutFailed, err)
	}
	return &resp, nil
}

// validateShipping требует либо сохраненный адрес, либо заполненные обязательные поля.
func validateShipping(a *dto.ShippingAddress) error {
	if a == nil {
		return invalid("shipping address is required")
	}
	if a.UseSavedAddress && a.ID > 0 {
		return nil
	}
	fields := []struct{ name, value string }{
		{"full_name", a.FullName},
		{"address_line1", a.AddressLine1},
		{"city", a.City},
		{"zip_code", a.ZipCode},
		{"country", a.Country},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return invalid("shipping address is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// List возвращает заказы пользователя.
func (s *OrderServiceImpl) List(ctx context.Context) ([]dto.Order, error) {
	var orders []dto.Order
	if err := s.client.Do(ctx, http.MethodGet, PathOrders, nil, &orders); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorListOrdersFailed, err)
	}
	return orders, nil
}

// Get возвращает заказ с позициями.
func (s *OrderServiceImpl) Get(ctx context.Context, orderID int64) (*dto.Order, error) {
	if err := checkID("order id", orderID); err != nil {
		return nil, err
	}

	var order dto.Order
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf(PathOrder, orderID), nil, &order); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetOrderFailed, err)
	}
	return &order, nil
}
