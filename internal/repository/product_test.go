package repository

import (
	"strings"
	"testing"
)

// Tags and reviews must be aggregated independently: a single query that
// joins both multiplies every review text once per tag, which inflates
// those terms in the feature blob downstream.
func TestCatalogQueryAggregatesIndependently(t *testing.T) {
	if strings.Contains(catalogEntriesQuery, "LEFT JOIN reviews") {
		t.Error("reviews must be aggregated in a correlated subquery, not joined with tags")
	}
	if strings.Count(catalogEntriesQuery, "array_agg") != 2 {
		t.Errorf("expected one aggregate each for tags and reviews:\n%s", catalogEntriesQuery)
	}
	if !strings.Contains(catalogEntriesQuery, "WHERE pt.product_id = p.id") ||
		!strings.Contains(catalogEntriesQuery, "WHERE rv.product_id = p.id") {
		t.Error("both aggregates must be correlated on the product id")
	}
}

// Aggregate order is unspecified unless pinned, and the feature text (and
// its bigrams) must be identical from one training run to the next.
func TestCatalogQueryOrdersAggregates(t *testing.T) {
	if !strings.Contains(catalogEntriesQuery, "array_agg(t.caption ORDER BY t.caption)") {
		t.Error("tag captions must be aggregated in a fixed order")
	}
	if !strings.Contains(catalogEntriesQuery, "array_agg(rv.review_text ORDER BY rv.id)") {
		t.Error("review texts must be aggregated in a fixed order")
	}
}
