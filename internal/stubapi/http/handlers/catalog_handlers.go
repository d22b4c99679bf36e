package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"shopfront/internal/stubapi/http/middleware"
	"shopfront/internal/stubapi/shop"
)

type submitReviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Product возвращает карточку товара.
func (h *Handler) Product(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	product, err := h.store.Product(id)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, product)
}

// Reviews возвращает отзывы о товаре от новых к старым.
func (h *Handler) Reviews(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	reviews, err := h.store.Reviews(id)
	if err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusOK, fiber.Map{"reviews": reviews})
}

// SubmitReview добавляет отзыв от текущего пользователя.
func (h *Handler) SubmitReview(c fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return sendDetail(c, http.StatusNotFound, DetailNotFound)
	}

	var req submitReviewRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if strings.TrimSpace(req.Text) == "" {
		return sendError(c, http.StatusBadRequest, "review text is required")
	}

	if err := h.store.AddReview(middleware.UserID(c), id, req.Rating, req.Text); err != nil {
		return fail(c, err)
	}
	return send(c, http.StatusCreated, fiber.Map{"message": "Review submitted successfully", "success": true})
}

// Search ищет товары по параметру q.
func (h *Handler) Search(c fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return send(c, http.StatusOK, fiber.Map{
			"query":   "",
			"results": []shop.SearchResult{},
			"message": "Please enter a search term",
		})
	}

	results := h.store.Search(query)
	body := fiber.Map{"query": query, "results": results}
	if len(results) == 0 {
		body["message"] = "No products found"
	}
	return send(c, http.StatusOK, body)
}

// SearchSuggestions возвращает подсказки для строки поиска.
func (h *Handler) SearchSuggestions(c fiber.Ctx) error {
	return send(c, http.StatusOK, h.store.Suggestions(c.Query("q")))
}
