package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"shopfront/internal/stubapi/http/middleware"
	"shopfront/internal/stubapi/shop"
)

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

type shippingAddress struct {
	shop.Address
	UseSavedAddress bool `json:"use_saved_address"`
}

type checkoutRequest struct {
	ShippingAddress shippingAddress `json:"shipping_address"`
}

type buyNowRequest struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	ShippingAddress shippingAddress `json:"shipping_address"`
}

// Cart возвращает корзину текущего пользователя.
func (h *Handler) Cart(c fiber.Ctx) error {
	return send(c, http.StatusOK, h.store.Cart(middleware.UserID(c)))
}

// AddToCart добавляет товар в корзину.
func (h *Handler) AddToCart(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	product, err := h.store.AddToCart(middleware.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, fiber.Map{"message": product.Name + " added to cart", "status": "success"})
}

// UpdateCart задает количество товара в корзине.
func (h *Handler) UpdateCart(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	var req updateCartRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	price, cart, err := h.store.UpdateCart(middleware.UserID(c), id, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, fiber.Map{
		"message":                "Cart updated",
		"discounted_price":       price,
		"total_discounted_price": cart.TotalDiscountedPrice,
		"total_discount":         cart.TotalDiscount,
	})
}

// RemoveFromCart убирает товар из корзины.
func (h *Handler) RemoveFromCart(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	product, err := h.store.RemoveFromCart(middleware.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, fiber.Map{"message": product.Name + " removed from cart", "status": "success"})
}

// Checkout оформляет заказ из корзины.
func (h *Handler) Checkout(c fiber.Ctx) error {
	var req checkoutRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	userID := middleware.UserID(c)
	address, err := h.shippingAddress(userID, &req.ShippingAddress)
	if err != nil {
		return fail(c, err)
	}

	order, err := h.store.Checkout(userID, address)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusCreated, fiber.Map{"message": "Order placed successfully", "order": order})
}

// BuyNow оформляет заказ на один товар.
func (h *Handler) BuyNow(c fiber.Ctx) error {
	var req buyNowRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.ProductID <= 0 {
		return sendError(c, http.StatusBadRequest, "product_id is required")
	}

	userID := middleware.UserID(c)
	address, err := h.shippingAddress(userID, &req.ShippingAddress)
	if err != nil {
		return fail(c, err)
	}

	order, err := h.store.BuyNow(userID, req.ProductID, req.Quantity, address)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusCreated, fiber.Map{"message": "Order placed successfully", "order": order})
}

// shippingAddress выбирает сохраненный адрес или проверяет введенный.
func (h *Handler) shippingAddress(userID int64, req *shippingAddress) (string, error) {
	if req.UseSavedAddress && req.ID > 0 {
		saved, err := h.store.Address(userID, req.ID)
		if err != nil {
			return "", err
		}
		return saved.String(), nil
	}

	a := req.Address
	for _, v := range []string{a.FullName, a.AddressLine1, a.City, a.ZipCode, a.Country} {
		if strings.TrimSpace(v) == "" {
			return "", shop.ErrInvalidAddress
		}
	}
	return a.String(), nil
}

// Orders возвращает заказы текущего пользователя.
func (h *Handler) Orders(c fiber.Ctx) error {
	return send(c, http.StatusOK, h.store.Orders(middleware.UserID(c)))
}

// Order возвращает один заказ.
func (h *Handler) Order(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	order, err := h.store.Order(middleware.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, order)
}
