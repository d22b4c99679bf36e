package dto

// Состояния товара после переключения в избранном.
const (
	WishlistAdded   = "added"
	WishlistRemoved = "removed"
)

// WishlistItem - товар в избранном.
type WishlistItem struct {
	ID      int64          `json:"id"`
	Product ProductSummary `json:"product"`
}

// WishlistToggleResponse - результат переключения.
type WishlistToggleResponse struct {
	Status string `json:"status"`
}

// WishlistStatus - есть ли товар в избранном.
type WishlistStatus struct {
	IsWishlisted bool `json:"is_wishlisted"`
}
