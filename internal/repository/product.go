package repository

import (
	"context"
	"fmt"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// catalogEntriesQuery aggregates tags and review texts in independent
// correlated subqueries. Joining both onto the product row would multiply
// every review once per tag, and the aggregates are ordered so the feature
// text is identical from one training run to the next.
const catalogEntriesQuery = `SELECT p.id, p.name, p.category, COALESCE(p.description, ''),
       COALESCE((SELECT array_agg(t.caption ORDER BY t.caption)
                 FROM product_tags pt
                 JOIN tags t ON t.id = pt.tag_id
                 WHERE pt.product_id = p.id), '{}'),
       COALESCE((SELECT array_agg(rv.review_text ORDER BY rv.id)
                 FROM reviews rv
                 WHERE rv.product_id = p.id AND rv.review_text <> ''), '{}')
FROM products p
ORDER BY p.id`

// GetCatalogEntries loads every product with its tag captions and review
// texts aggregated in, ordered by id. This is the training-time catalog
// snapshot.
func (r *Repository) GetCatalogEntries(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := r.pool.Query(ctx, catalogEntriesQuery)
	if err != nil {
		return nil, fmt.Errorf("query catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Description, &e.Tags, &e.ReviewTexts); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog entries: %w", err)
	}
	return entries, nil
}

// GetProductsByIDs fetches the live products for an id set. Ids no longer
// present in the catalog are simply absent from the result.
func (r *Repository) GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	if len(ids) == 0 {
		return map[int64]domain.Product{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, COALESCE(description, ''), excerpt, price, quantity, seller_id, created_at
		 FROM products WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]domain.Product)
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Excerpt,
			&p.Price, &p.Quantity, &p.SellerID, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// GetMostReviewedProductIDs returns product ids by descending review
// count, ties broken by ascending id. Products without reviews still
// participate with a count of zero.
func (r *Repository) GetMostReviewedProductIDs(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id
		 FROM products p
		 LEFT JOIN reviews rv ON rv.product_id = p.id
		 GROUP BY p.id
		 ORDER BY COUNT(rv.id) DESC, p.id ASC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query most reviewed products: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate most reviewed products: %w", err)
	}
	return ids, nil
}
