package dto

// ProductSummary - краткая карточка товара в списках.
type ProductSummary struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	MainImage          string  `json:"main_image,omitempty"`
	OriginalPrice      Price   `json:"original_price"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty"`
	DiscountedPrice    Price   `json:"discounted_price"`
	AverageRating      float64 `json:"average_rating,omitempty"`
	NumberOfReviews    int     `json:"number_of_reviews,omitempty"`
}

// Review - отзыв о товаре.
type Review struct {
	ID     int64  `json:"id"`
	User   string `json:"user"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// Thumbnail - дополнительное изображение товара.
type Thumbnail struct {
	Image string `json:"image"`
}

// ProductDetail - полная карточка товара.
type ProductDetail struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	MainImage          string           `json:"main_image,omitempty"`
	Description        string           `json:"description"`
	DescriptionPoints  []string         `json:"description_points,omitempty"`
	OriginalPrice      Price            `json:"original_price"`
	DiscountPercentage float64          `json:"discount_percentage"`
	DiscountedPrice    Price            `json:"discounted_price"`
	AverageRating      float64          `json:"average_rating"`
	Stock              int              `json:"stock,omitempty"`
	Reviews            []Review         `json:"reviews"`
	Thumbnails         []Thumbnail      `json:"thumbnails,omitempty"`
	SimilarProducts    []ProductSummary `json:"similar_products,omitempty"`
}

// ReviewsResponse - список отзывов товара.
type ReviewsResponse struct {
	Reviews []Review `json:"reviews"`
}

// SubmitReviewRequest - новый отзыв. Rating от 1 до 5.
type SubmitReviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// SearchResult - найденный товар.
type SearchResult struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// SearchResponse - результат поиска.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Message string         `json:"message,omitempty"`
}
