package handler

import "github.com/easybuyhq/recommendation-service/internal/domain"

type RecommendationResponse struct {
	UserID          int64                       `json:"user_id"`
	Recommendations []domain.RecommendedProduct `json:"recommendations"`
	Metadata        domain.RecommendationMeta   `json:"metadata"`
}

type SimilarProductsResponse struct {
	ProductID int64                       `json:"product_id"`
	Similar   []domain.RecommendedProduct `json:"similar"`
}

type ReloadResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
