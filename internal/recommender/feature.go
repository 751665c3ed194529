package recommender

import (
	"strings"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// ProductFeature is one row of the feature table the vectorizer consumes.
type ProductFeature struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// BuildFeatures turns every catalog entry into a single text blob:
// name, description, tag captions, review texts, category, in that order.
// Missing fields contribute empty strings, never a skipped product.
func BuildFeatures(catalog []domain.CatalogEntry) ([]ProductFeature, error) {
	if len(catalog) == 0 {
		return nil, domain.ErrNoData
	}

	features := make([]ProductFeature, 0, len(catalog))
	for _, p := range catalog {
		parts := []string{
			p.Name,
			p.Description,
			strings.Join(p.Tags, " "),
			strings.Join(p.ReviewTexts, " "),
			p.Category,
		}
		features = append(features, ProductFeature{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Text:     strings.Join(parts, " "),
		})
	}
	return features, nil
}

func featureIDs(features []ProductFeature) []int64 {
	ids := make([]int64, len(features))
	for i, f := range features {
		ids[i] = f.ID
	}
	return ids
}
