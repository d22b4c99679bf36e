// Package http содержит HTTP сервер тестового API магазина.
package http

import (
	"github.com/gofiber/fiber/v3"

	"shopfront/internal/stubapi/http/handlers"
	"shopfront/internal/stubapi/http/middleware"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// Пути повторяют API магазина вместе с завершающей косой чертой.
func SetupRouter(app *fiber.App, h *handlers.Handler, validator middleware.AccessValidator) {
	protected := middleware.NewAuthMiddleware(validator)
	optional := middleware.NewOptionalAuthMiddleware(validator)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health/", h.Health)

	// Auth routes (публичные).
	app.Post("/login/", h.Login)
	app.Post("/register/", h.Register)
	app.Post("/api/token/refresh/", h.RefreshToken)
	app.Post("/api/password_reset/", h.PasswordReset)
	app.Post("/api/password_reset_confirm/:uid/:token/", h.PasswordResetConfirm)

	// Каталог открыт, но недействительный токен отклоняется.
	app.Get("/product/:id/", h.Product, optional)
	app.Get("/product/:id/reviews/", h.Reviews, optional)
	app.Post("/product/:id/submit-review/", h.SubmitReview, protected)
	app.Get("/search/", h.Search, optional)
	app.Get("/search-suggestions/", h.SearchSuggestions, optional)

	// Корзина и заказы.
	app.Get("/cart/", h.Cart, protected)
	app.Post("/add-to-cart/:id/", h.AddToCart, protected)
	app.Post("/update-cart/:id/", h.UpdateCart, protected)
	app.Post("/remove-from-cart/:id/", h.RemoveFromCart, protected)
	app.Post("/checkout/", h.Checkout, protected)
	app.Post("/buy-now-checkout/", h.BuyNow, protected)
	app.Get("/orders/", h.Orders, protected)
	app.Get("/orders/:id/", h.Order, protected)

	// Избранное.
	app.Get("/wishlist/", h.Wishlist, protected)
	app.Post("/wishlist/toggle/:id/", h.ToggleWishlist, protected)
	app.Get("/wishlist/check/:id/", h.CheckWishlist, protected)
	app.Delete("/wishlist/remove/:id/", h.RemoveFromWishlist, protected)

	// Профиль и адреса.
	app.Get("/user-profile/", h.Profile, protected)
	app.Put("/update-profile/", h.UpdateProfile, protected)
	app.Get("/saved-addresses/", h.SavedAddresses, protected)
	app.Post("/add-address/", h.AddAddress, protected)
	app.Delete("/delete-address/:id/", h.DeleteAddress, protected)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": handlers.DetailNotFound,
		})
	})
}
