package dto

// CartItem - позиция корзины.
type CartItem struct {
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart - содержимое корзины.
type Cart struct {
	Items                []CartItem `json:"cart_items"`
	TotalDiscountedPrice Price      `json:"total_discounted_price"`
	TotalDiscount        Price      `json:"total_discount,omitempty"`
}

// UpdateCartRequest задает новое количество товара.
type UpdateCartRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateResponse - ответ на изменение количества.
type CartUpdateResponse struct {
	Message              string `json:"message,omitempty"`
	DiscountedPrice      Price  `json:"discounted_price"`
	TotalDiscountedPrice Price  `json:"total_discounted_price"`
	TotalDiscount        Price  `json:"total_discount"`
}
