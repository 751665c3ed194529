package domain

type RecommendedProduct struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     int64   `json:"price"`
	Score     float64 `json:"score"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	ColdStart   bool   `json:"cold_start"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []RecommendedProduct
	ColdStart       bool
	CacheHit        bool
}

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchUserResult struct {
	UserID          int64                `json:"user_id"`
	Recommendations []RecommendedProduct `json:"recommendations,omitempty"`
	Status          BatchStatus          `json:"status"`
	Error           string               `json:"error,omitempty"`
	Message         string               `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}
