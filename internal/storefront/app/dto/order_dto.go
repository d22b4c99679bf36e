package dto

// Address - адрес доставки.
type Address struct {
	ID           int64  `json:"id,omitempty"`
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

// ShippingAddress - адрес в запросе оформления заказа.
type ShippingAddress struct {
	Address
	UseSavedAddress bool `json:"use_saved_address"`
}

// CheckoutRequest оформляет заказ из корзины.
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// BuyNowRequest оформляет заказ на один товар, минуя корзину.
type BuyNowRequest struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// OrderItem - позиция заказа.
type OrderItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Price    Price  `json:"price"`
}

// Order - заказ пользователя.
type Order struct {
	ID              int64       `json:"id"`
	TotalPrice      Price       `json:"total_price"`
	Status          string      `json:"status,omitempty"`
	OrderedAt       string      `json:"ordered_at,omitempty"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
}

// CheckoutResponse - результат оформления заказа.
type CheckoutResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}
