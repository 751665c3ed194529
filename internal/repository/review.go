package repository

import (
	"context"
	"fmt"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// GetReviewSignals returns all explicit ratings with their free text.
func (r *Repository) GetReviewSignals(ctx context.Context) ([]domain.ReviewSignal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT reviewer_id, product_id, rating, COALESCE(review_text, '')
		 FROM reviews`,
	)
	if err != nil {
		return nil, fmt.Errorf("query review signals: %w", err)
	}
	defer rows.Close()

	var reviews []domain.ReviewSignal
	for rows.Next() {
		var rv domain.ReviewSignal
		if err := rows.Scan(&rv.UserID, &rv.ProductID, &rv.Rating, &rv.Text); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

// GetReviewedProductIDs returns the distinct products a user reviewed.
func (r *Repository) GetReviewedProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT product_id FROM reviews WHERE reviewer_id = $1`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query reviewed products for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reviewed product id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviewed product ids: %w", err)
	}
	return ids, nil
}
