// Package services определяет интерфейсы сервисов магазина.
package services

import (
	"context"

	"shopfront/internal/storefront/app/dto"
)

// AuthService управляет сессией пользователя.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) error

	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)

	Logout(ctx context.Context) error

	RequestPasswordReset(ctx context.Context, email string) (*dto.StatusResponse, error)

	ConfirmPasswordReset(ctx context.Context, uid, token string, req *dto.PasswordResetConfirmRequest) (*dto.StatusResponse, error)

	LoggedIn(ctx context.Context) (bool, error)
}

// CartService работает с корзиной.
type CartService interface {
	Get(ctx context.Context) (*dto.Cart, error)

	Add(ctx context.Context, productID int64) (*dto.StatusResponse, error)

	Update(ctx context.Context, productID int64, quantity int) (*dto.CartUpdateResponse, error)

	Remove(ctx context.Context, productID int64) (*dto.StatusResponse, error)
}

// OrderService оформляет и показывает заказы.
type OrderService interface {
	Checkout(ctx context.Context, address *dto.ShippingAddress) (*dto.CheckoutResponse, error)

	BuyNow(ctx context.Context, productID int64, quantity int, address *dto.ShippingAddress) (*dto.CheckoutResponse, error)

	List(ctx context.Context) ([]dto.Order, error)

	Get(ctx context.Context, orderID int64) (*dto.Order, error)
}

// ProductService - каталог, отзывы и поиск.
type ProductService interface {
	Get(ctx context.Context, productID int64) (*dto.ProductDetail, error)

	Reviews(ctx context.Context, productID int64) ([]dto.Review, error)

	SubmitReview(ctx context.Context, productID int64, req *dto.SubmitReviewRequest) (*dto.StatusResponse, error)

	Search(ctx context.Context, query string) (*dto.SearchResponse, error)

	Suggestions(ctx context.Context, query string) ([]string, error)
}

// WishlistService работает с избранным.
type WishlistService interface {
	List(ctx context.Context) ([]dto.WishlistItem, error)

	Toggle(ctx context.Context, productID int64) (bool, error)

	Remove(ctx context.Context, productID int64) error

	Contains(ctx context.Context, productID int64) (bool, error)
}

// ProfileService работает с профилем и сохраненными адресами.
type ProfileService interface {
	Get(ctx context.Context) (*dto.Profile, error)

	Update(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.Profile, error)

	Addresses(ctx context.Context) ([]dto.Address, error)

	AddAddress(ctx context.Context, address *dto.Address) (*dto.AddAddressResponse, error)

	DeleteAddress(ctx context.Context, addressID int64) error
}
