package recommender

import (
	"fmt"
	"sort"
	"time"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// purchasedWeight down-weights already-owned items when the caller opts
// out of excluding them outright.
const purchasedWeight = 0.1

// Weights controls the linear blend of the two similarity signals. Both
// must be non-negative; they need not sum to 1, and a zero disables that
// signal entirely.
type Weights struct {
	Content float64 `json:"content_weight"`
	Collab  float64 `json:"collab_weight"`
}

func (w Weights) Validate() error {
	if w.Content < 0 || w.Collab < 0 {
		return fmt.Errorf("content=%v collab=%v: %w", w.Content, w.Collab, domain.ErrInvalidWeights)
	}
	return nil
}

// ProductMeta is the slice of product data frozen into a snapshot.
type ProductMeta struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Model is one immutable trained snapshot: the combined similarity matrix,
// the product metadata table, the weight configuration, and (for the
// user-user strategy) precomputed per-user product lists. A rebuild
// produces a new Model; nothing mutates one in place.
type Model struct {
	Similarity *SimilarityMatrix `json:"similarity"`
	Products   []ProductMeta     `json:"products"`
	Weights    Weights           `json:"weights"`
	UserLists  map[int64][]int64 `json:"user_lists,omitempty"`
	TrainedAt  time.Time         `json:"trained_at"`
}

// ScoredItem is a candidate product with its accumulated score.
type ScoredItem struct {
	ProductID int64
	Score     float64
}

// RecommendForSeeds aggregates the similarity rows of every seed item into
// a per-candidate score and returns the ranked top n. Seeds missing from
// the model index are skipped. With purchasedPenalty the seeds themselves
// are removed from the candidates; otherwise their scores are multiplied
// by purchasedWeight.
func (m *Model) RecommendForSeeds(seeds []int64, topN int, purchasedPenalty bool) []ScoredItem {
	scores := make(map[int64]float64)
	seedSet := make(map[int64]bool, len(seeds))

	for _, seed := range seeds {
		seedSet[seed] = true
		row := m.Similarity.Row(seed)
		if row == nil {
			continue // product added after the last training run
		}
		for j, sim := range row {
			scores[m.Similarity.IDs[j]] += sim
		}
	}

	for seed := range seedSet {
		if purchasedPenalty {
			delete(scores, seed)
		} else if s, ok := scores[seed]; ok {
			scores[seed] = s * purchasedWeight
		}
	}

	return rank(scores, topN)
}

// SimilarItems returns the top n neighbors of one product, self excluded.
// An unknown product yields an empty list, never an error.
func (m *Model) SimilarItems(productID int64, topN int) []ScoredItem {
	row := m.Similarity.Row(productID)
	if row == nil {
		return nil
	}
	scores := make(map[int64]float64, len(row))
	for j, sim := range row {
		if id := m.Similarity.IDs[j]; id != productID {
			scores[id] = sim
		}
	}
	return rank(scores, topN)
}

// rank orders candidates by descending score, ties broken by ascending
// product id so identical inputs always produce identical output.
func rank(scores map[int64]float64, topN int) []ScoredItem {
	ranked := make([]ScoredItem, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, ScoredItem{ProductID: id, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
