package shop

import "errors"

// Ошибки магазина.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrNotInCart          = errors.New("product is not in cart")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOutOfStock         = errors.New("product out of stock")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview    = errors.New("you have already submitted a review for this product")
	ErrInvalidResetToken  = errors.New("invalid or expired reset link")
	ErrInvalidAddress     = errors.New("address is incomplete")
)
