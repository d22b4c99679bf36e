package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"shopfront/internal/stubapi/http/middleware"
	"shopfront/internal/stubapi/shop"
)

type updateProfileRequest struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Wishlist возвращает избранное.
func (h *Handler) Wishlist(c fiber.Ctx) error {
	return send(c, http.StatusOK, h.store.Wishlist(middleware.UserID(c)))
}

// ToggleWishlist добавляет товар в избранное или убирает его.
func (h *Handler) ToggleWishlist(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	added, err := h.store.ToggleWishlist(middleware.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	status := "removed"
	if added {
		status = "added"
	}
	return send(c, http.StatusOK, fiber.Map{"status": status})
}

// CheckWishlist сообщает, есть ли товар в избранном.
func (h *Handler) CheckWishlist(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	in, err := h.store.InWishlist(middleware.UserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, fiber.Map{"is_wishlisted": in})
}

// RemoveFromWishlist убирает товар из избранного.
func (h *Handler) RemoveFromWishlist(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	if err := h.store.RemoveFromWishlist(middleware.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Profile возвращает профиль текущего пользователя.
func (h *Handler) Profile(c fiber.Ctx) error {
	user, err := h.store.User(middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, user)
}

// UpdateProfile заменяет поля профиля.
func (h *Handler) UpdateProfile(c fiber.Ctx) error {
	var req updateProfileRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if req.Username == "" || req.Email == "" {
		return sendError(c, http.StatusBadRequest, "username and email are required")
	}

	user, err := h.store.UpdateProfile(middleware.UserID(c), req.Username, req.FullName, req.Email, req.PhoneNumber)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, user)
}

// SavedAddresses возвращает сохраненные адреса.
func (h *Handler) SavedAddresses(c fiber.Ctx) error {
	return send(c, http.StatusOK, h.store.Addresses(middleware.UserID(c)))
}

// AddAddress сохраняет адрес доставки.
func (h *Handler) AddAddress(c fiber.Ctx) error {
	var req shop.Address
	if ok, err := bind(c, &req); !ok {
		return err
	}

	address, err := h.store.AddAddress(middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusCreated, fiber.Map{"ok": true, "address": address})
}

// DeleteAddress удаляет сохраненный адрес.
func (h *Handler) DeleteAddress(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	if err := h.store.DeleteAddress(middleware.UserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
