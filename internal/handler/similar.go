package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/easybuyhq/recommendation-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GET /products/{productID}/similar
func (h *Handler) GetSimilarProducts(w http.ResponseWriter, r *http.Request) {
	productIDStr := chi.URLParam(r, "productID")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid product_id parameter")
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	similar, err := h.service.GetSimilarProducts(r.Context(), productID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "model_unavailable",
				"Recommendation model is not trained yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, SimilarProductsResponse{
		ProductID: productID,
		Similar:   similar,
	})
}
