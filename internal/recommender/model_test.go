package recommender

import (
	"math"
	"testing"
)

// testModel builds a fixed three-product model:
// A=1, B=2, C=3 with sim(A,B)=0.9 and sim(A,C)=0.2.
func testModel() *Model {
	sim := NewSimilarityMatrix(
		[]int64{1, 2, 3},
		[][]float64{
			{1.0, 0.9, 0.2},
			{0.9, 1.0, 0.3},
			{0.2, 0.3, 1.0},
		},
	)
	return &Model{
		Similarity: sim,
		Products: []ProductMeta{
			{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
		},
		Weights: Weights{Content: 0.5, Collab: 0.5},
	}
}

func TestWarmRecommendation(t *testing.T) {
	m := testModel()

	// user purchased A once; expect [B, C] in that order
	recs := m.RecommendForSeeds([]int64{1}, 2, true)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].ProductID != 2 || recs[1].ProductID != 3 {
		t.Errorf("expected [2 3], got [%d %d]", recs[0].ProductID, recs[1].ProductID)
	}
	if recs[0].Score != 0.9 || recs[1].Score != 0.2 {
		t.Errorf("expected scores [0.9 0.2], got [%f %f]", recs[0].Score, recs[1].Score)
	}
}

func TestPurchasedExcludedWithPenalty(t *testing.T) {
	m := testModel()

	recs := m.RecommendForSeeds([]int64{1}, 10, true)
	for _, r := range recs {
		if r.ProductID == 1 {
			t.Errorf("seed product 1 must not appear with purchasedPenalty=true")
		}
	}
}

func TestPurchasedDownWeightedWithoutPenalty(t *testing.T) {
	m := testModel()

	recs := m.RecommendForSeeds([]int64{1}, 10, false)

	found := false
	for _, r := range recs {
		if r.ProductID == 1 {
			found = true
			// self-similarity 1.0 scaled by 0.1
			if math.Abs(r.Score-0.1) > 1e-12 {
				t.Errorf("expected seed score 0.1, got %f", r.Score)
			}
		}
	}
	if !found {
		t.Error("seed product should stay in the list with purchasedPenalty=false")
	}
	if recs[0].ProductID != 2 {
		t.Errorf("expected product 2 ranked first, got %d", recs[0].ProductID)
	}
}

func TestDeterministicOutput(t *testing.T) {
	m := testModel()

	first := m.RecommendForSeeds([]int64{1, 3}, 3, true)
	second := m.RecommendForSeeds([]int64{1, 3}, 3, true)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestStaleSeedSkipped(t *testing.T) {
	m := testModel()

	// product 99 was added after training; only seed 1 counts
	withStale := m.RecommendForSeeds([]int64{1, 99}, 2, true)
	clean := m.RecommendForSeeds([]int64{1}, 2, true)

	if len(withStale) != len(clean) {
		t.Fatalf("stale seed changed result size: %d vs %d", len(withStale), len(clean))
	}
	for i := range clean {
		if withStale[i] != clean[i] {
			t.Errorf("position %d differs: %+v vs %+v", i, withStale[i], clean[i])
		}
	}
}

func TestTieBreakByProductID(t *testing.T) {
	sim := NewSimilarityMatrix(
		[]int64{1, 2, 3},
		[][]float64{
			{1.0, 0.5, 0.5},
			{0.5, 1.0, 0.0},
			{0.5, 0.0, 1.0},
		},
	)
	m := &Model{Similarity: sim}

	recs := m.RecommendForSeeds([]int64{1}, 2, true)
	if recs[0].ProductID != 2 || recs[1].ProductID != 3 {
		t.Errorf("equal scores must rank by ascending id, got [%d %d]",
			recs[0].ProductID, recs[1].ProductID)
	}
}

func TestSimilarItems(t *testing.T) {
	m := testModel()

	similar := m.SimilarItems(1, 10)
	if len(similar) != 2 {
		t.Fatalf("expected 2 similar items, got %d", len(similar))
	}
	for _, s := range similar {
		if s.ProductID == 1 {
			t.Error("self must be excluded from similar items")
		}
	}
	if similar[0].ProductID != 2 {
		t.Errorf("expected product 2 most similar, got %d", similar[0].ProductID)
	}

	if got := m.SimilarItems(99, 10); len(got) != 0 {
		t.Errorf("unknown product should yield empty list, got %v", got)
	}
}

func TestValidateWeights(t *testing.T) {
	if err := (Weights{Content: 0.5, Collab: 0.5}).Validate(); err != nil {
		t.Errorf("valid weights rejected: %v", err)
	}
	if err := (Weights{Content: 0, Collab: 0}).Validate(); err != nil {
		t.Errorf("zero weights are allowed: %v", err)
	}
	if err := (Weights{Content: -0.1, Collab: 0.5}).Validate(); err == nil {
		t.Error("negative content weight must be rejected")
	}
	if err := (Weights{Content: 0.5, Collab: -1}).Validate(); err == nil {
		t.Error("negative collab weight must be rejected")
	}
}
