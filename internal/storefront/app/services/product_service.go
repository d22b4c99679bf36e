package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"shopfront/internal/storefront/apiclient"
	"shopfront/internal/storefront/app/dto"
	"shopfront/internal/storefront/ports/api"
	"shopfront/internal/storefront/ports/services"
)

// Пути API каталога.
const (
	PathProduct           = "/product/%d/"
	PathProductReviews    = "/product/%d/reviews/"
	PathSubmitReview      = "/product/%d/submit-review/"
	PathSearch            = "/search/"
	PathSearchSuggestions = "/search-suggestions/"
)

// Константы ошибок.
const (
	ErrorGetProductFailed   = "failed to get product"
	ErrorGetReviewsFailed   = "failed to get reviews"
	ErrorSubmitReviewFailed = "failed to submit review"
	ErrorSearchFailed       = "failed to search products"
)

// ProductServiceImpl реализует интерфейс ProductService.
type ProductServiceImpl struct {
	client api.Client
}

// NewProductService создает новый экземпляр сервиса каталога.
func NewProductService(client api.Client) services.ProductService {
	return &ProductServiceImpl{client: client}
}

func (s *ProductServiceImpl) Get(ctx context.Context, productID int64) (*dto.ProductDetail, error) {
	if err := checkID("product id", productID); err != nil {
		return nil, err
	}

	var product dto.ProductDetail
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf(PathProduct, productID), nil, &product); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetProductFailed, err)
	}
	if product.ID == 0 {
		product.ID = productID
	}
	return &product, nil
}

func (s *ProductServiceImpl) Reviews(ctx context.Context, productID int64) ([]dto.Review, error) {
	if err := checkID("product id", productID); err != nil {
		return nil, err
	}

	var resp dto.ReviewsResponse
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf(PathProductReviews, productID), nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetReviewsFailed, err)
	}
	return resp.Reviews, nil
}

// SubmitReview публикует отзыв. Сервер допускает один отзыв на товар от пользователя.
func (s *ProductServiceImpl) SubmitReview(
	ctx context.Context,
	productID int64,
	req *dto.SubmitReviewRequest,
) (*dto.StatusResponse, error) {
	if err := checkID("product id", productID); err != nil {
		return nil, err
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, invalid("rating must be between %d and %d, got %d", MinRating, MaxRating, req.Rating)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, invalid("review text is required")
	}

	var resp dto.StatusResponse
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf(PathSubmitReview, productID), req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorSubmitReviewFailed, err)
	}
	return &resp, nil
}

func (s *ProductServiceImpl) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("search query is required")
	}

	var resp dto.SearchResponse
	err := s.client.Do(ctx, http.MethodGet, PathSearch, nil, &resp,
		apiclient.WithQuery(url.Values{"q": {query}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorSearchFailed, err)
	}
	return &resp, nil
}

// Suggestions возвращает до десяти коротких названий товаров по префиксу.
// Пустой запрос дает пустой список без обращения к серверу.
func (s *ProductServiceImpl) Suggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}

	var suggestions []string
	err := s.client.Do(ctx, http.MethodGet, PathSearchSuggestions, nil, &suggestions,
		apiclient.WithQuery(url.Values{"q": {query}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorSearchFailed, err)
	}
	return suggestions, nil
}
