// Package shop хранит состояние тестового магазина в памяти: пользователей,
// каталог, корзины, заказы, избранное и адреса.
package shop

import (
	"fmt"
	"time"
)

// Money сериализуется как Decimal в Django: строка с двумя знаками.
type Money float64

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%.2f"`, float64(m))), nil
}

// User - зарегистрированный пользователь.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"`
}

// Product - товар каталога.
type Product struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	ShortName          string  `json:"-"`
	Description        string  `json:"description"`
	MainImage          string  `json:"main_image"`
	OriginalPrice      Money   `json:"original_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Stock              int     `json:"stock"`
}

// DiscountedPrice - цена со скидкой.
func (p *Product) DiscountedPrice() Money {
	return Money(float64(p.OriginalPrice) * (100 - p.DiscountPercentage) / 100)
}

// Summary - краткая карточка для списков.
func (p *Product) Summary(avgRating float64, reviews int) ProductSummary {
	return ProductSummary{
		ID:                 p.ID,
		Name:               p.Name,
		MainImage:          p.MainImage,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		DiscountedPrice:    p.DiscountedPrice(),
		AverageRating:      avgRating,
		NumberOfReviews:    reviews,
	}
}

// ProductSummary - представление товара в корзине, избранном и похожих товарах.
type ProductSummary struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	MainImage          string  `json:"main_image"`
	OriginalPrice      Money   `json:"original_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountedPrice    Money   `json:"discounted_price"`
	AverageRating      float64 `json:"average_rating"`
	NumberOfReviews    int     `json:"number_of_reviews"`
}

// Review - отзыв пользователя.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"-"`
	UserID    int64     `json:"-"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetail - полная карточка товара.
type ProductDetail struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	MainImage          string           `json:"main_image"`
	Description        string           `json:"description"`
	DescriptionPoints  []string         `json:"description_points"`
	OriginalPrice      Money            `json:"original_price"`
	DiscountPercentage float64          `json:"discount_percentage"`
	DiscountedPrice    Money            `json:"discounted_price"`
	AverageRating      float64          `json:"average_rating"`
	Stock              int              `json:"stock"`
	Reviews            []Review         `json:"reviews"`
	SimilarProducts    []ProductSummary `json:"similar_products"`
}

// CartItem - позиция корзины.
type CartItem struct {
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart - корзина с итогами.
type Cart struct {
	Items                []CartItem `json:"cart_items"`
	TotalDiscountedPrice Money      `json:"total_discounted_price"`
	TotalDiscount        Money      `json:"total_discount"`
}

// Address - сохраненный адрес доставки.
type Address struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

// String форматирует адрес одной строкой, как он хранится в заказе.
func (a *Address) String() string {
	s := a.FullName + ", " + a.AddressLine1
	if a.AddressLine2 != "" {
		s += ", " + a.AddressLine2
	}
	return fmt.Sprintf("%s, %s, %s %s, %s", s, a.City, a.State, a.ZipCode, a.Country)
}

// OrderItem - позиция заказа с ценой на момент покупки.
type OrderItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Price    Money  `json:"price"`
}

// Order - оформленный заказ.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"-"`
	TotalPrice      Money       `json:"total_price"`
	Status          string      `json:"status"`
	OrderedAt       time.Time   `json:"ordered_at"`
	ShippingAddress string      `json:"shipping_address"`
	Items           []OrderItem `json:"items"`
}

// WishlistItem - товар в избранном.
type WishlistItem struct {
	ID      int64          `json:"id"`
	Product ProductSummary `json:"product"`
}

// OrderStatusPending - статус нового заказа.
const OrderStatusPending = "pending"
