package repository

import (
	"context"
	"fmt"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// GetCompletedPurchases returns every line item of COMPLETED orders.
// Pending and cancelled orders never contribute collaborative signal.
func (r *Repository) GetCompletedPurchases(ctx context.Context) ([]domain.PurchaseSignal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT o.user_id, oi.product_id, oi.quantity
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.status = 'COMPLETED'`,
	)
	if err != nil {
		return nil, fmt.Errorf("query completed purchases: %w", err)
	}
	defer rows.Close()

	var purchases []domain.PurchaseSignal
	for rows.Next() {
		var p domain.PurchaseSignal
		if err := rows.Scan(&p.UserID, &p.ProductID, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return purchases, nil
}

// GetPurchasedProductIDs returns the distinct products a user bought in
// completed orders.
func (r *Repository) GetPurchasedProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT oi.product_id
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.user_id = $1 AND o.status = 'COMPLETED'`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query purchased products for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan purchased product id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchased product ids: %w", err)
	}
	return ids, nil
}
