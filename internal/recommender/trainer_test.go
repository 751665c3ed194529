package recommender

import (
	"errors"
	"math"
	"testing"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

func testCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{ID: 1, Name: "Wireless Earbuds", Category: "electronics", Description: "bluetooth audio earbuds", Tags: []string{"wireless", "audio"}},
		{ID: 2, Name: "Bluetooth Speaker", Category: "electronics", Description: "portable bluetooth audio speaker", Tags: []string{"wireless", "audio"}},
		{ID: 3, Name: "Garden Novel", Category: "books", Description: "a quiet story about gardens", ReviewTexts: []string{"lovely book"}},
	}
}

func testSignals() ([]domain.PurchaseSignal, []domain.ReviewSignal) {
	purchases := []domain.PurchaseSignal{
		{UserID: 1, ProductID: 1, Quantity: 1},
		{UserID: 1, ProductID: 2, Quantity: 1},
		{UserID: 2, ProductID: 2, Quantity: 2},
		{UserID: 2, ProductID: 3, Quantity: 1},
	}
	reviews := []domain.ReviewSignal{
		{UserID: 1, ProductID: 1, Rating: 5, Text: "excellent"},
		{UserID: 3, ProductID: 3, Rating: 4},
	}
	return purchases, reviews
}

func TestTrainSymmetry(t *testing.T) {
	purchases, reviews := testSignals()
	model, err := Train(TrainingData{Catalog: testCatalog(), Purchases: purchases, Reviews: reviews},
		Weights{Content: 0.5, Collab: 0.5})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	ids := model.Similarity.IDs
	for _, a := range ids {
		for _, b := range ids {
			if model.Similarity.At(a, b) != model.Similarity.At(b, a) {
				t.Errorf("combined matrix not symmetric at (%d,%d)", a, b)
			}
		}
	}
}

func TestTrainCollabWeightZeroCollapse(t *testing.T) {
	purchases, reviews := testSignals()
	catalog := testCatalog()

	model, err := Train(TrainingData{Catalog: catalog, Purchases: purchases, Reviews: reviews},
		Weights{Content: 1, Collab: 0})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	features, err := BuildFeatures(catalog)
	if err != nil {
		t.Fatalf("BuildFeatures failed: %v", err)
	}
	content := ContentSimilarity(features)

	for _, a := range content.IDs {
		for _, b := range content.IDs {
			if math.Abs(model.Similarity.At(a, b)-content.At(a, b)) > 1e-12 {
				t.Errorf("collab_weight=0 must collapse to content similarity at (%d,%d): %f vs %f",
					a, b, model.Similarity.At(a, b), content.At(a, b))
			}
		}
	}
}

func TestTrainContentWeightZeroCollapse(t *testing.T) {
	purchases, reviews := testSignals()
	catalog := testCatalog()

	model, err := Train(TrainingData{Catalog: catalog, Purchases: purchases, Reviews: reviews},
		Weights{Content: 0, Collab: 1})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	features, _ := BuildFeatures(catalog)
	interactions, err := BuildInteractions(purchases, reviews)
	if err != nil {
		t.Fatalf("BuildInteractions failed: %v", err)
	}
	collab := CollaborativeSimilarity(interactions, featureIDs(features))

	for _, a := range collab.IDs {
		for _, b := range collab.IDs {
			if math.Abs(model.Similarity.At(a, b)-collab.At(a, b)) > 1e-12 {
				t.Errorf("content_weight=0 must collapse to collaborative similarity at (%d,%d)", a, b)
			}
		}
	}
}

func TestTrainEmptyCatalog(t *testing.T) {
	_, err := Train(TrainingData{}, Weights{Content: 0.5, Collab: 0.5})
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestTrainNegativeWeights(t *testing.T) {
	_, err := Train(TrainingData{Catalog: testCatalog()}, Weights{Content: -1, Collab: 0.5})
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestTrainWithoutCollaborativeData(t *testing.T) {
	// content-only model still trains when there are no interactions
	model, err := Train(TrainingData{Catalog: testCatalog()}, Weights{Content: 0.5, Collab: 0.5})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if model.Similarity.Len() != 3 {
		t.Errorf("expected 3x3 matrix, got %d", model.Similarity.Len())
	}
	if len(model.UserLists) != 0 {
		t.Errorf("no interactions should produce no user lists, got %d", len(model.UserLists))
	}
}

func TestTrainBuildsUserLists(t *testing.T) {
	purchases, reviews := testSignals()
	model, err := Train(TrainingData{Catalog: testCatalog(), Purchases: purchases, Reviews: reviews},
		Weights{Content: 0.5, Collab: 0.5})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	list, ok := model.UserLists[1]
	if !ok {
		t.Fatal("user 1 should have a precomputed list")
	}
	for _, id := range list {
		if id == 1 || id == 2 {
			t.Errorf("user 1 already owns product %d; it must not be in the list", id)
		}
	}
}

func TestCombineIndexMismatch(t *testing.T) {
	a := NewSimilarityMatrix([]int64{1, 2}, [][]float64{{1, 0}, {0, 1}})
	b := NewSimilarityMatrix([]int64{1, 3}, [][]float64{{1, 0}, {0, 1}})

	if _, err := Combine(a, b, 0.5, 0.5); err == nil {
		t.Error("mismatched indices must be a construction error")
	}

	c := NewSimilarityMatrix([]int64{1}, [][]float64{{1}})
	if _, err := Combine(a, c, 0.5, 0.5); err == nil {
		t.Error("mismatched sizes must be a construction error")
	}
}

func TestBuildFeaturesOrder(t *testing.T) {
	features, err := BuildFeatures([]domain.CatalogEntry{
		{ID: 7, Name: "Mug", Category: "other", Description: "ceramic", Tags: []string{"gift"}, ReviewTexts: []string{"nice"}},
	})
	if err != nil {
		t.Fatalf("BuildFeatures failed: %v", err)
	}
	if features[0].Text != "Mug ceramic gift nice other" {
		t.Errorf("unexpected feature text %q", features[0].Text)
	}
}

func TestBuildFeaturesMissingFields(t *testing.T) {
	features, err := BuildFeatures([]domain.CatalogEntry{{ID: 1, Name: "Bare", Category: "other"}})
	if err != nil {
		t.Fatalf("BuildFeatures failed: %v", err)
	}
	if features[0].Text != "Bare    other" {
		t.Errorf("missing fields must contribute empty strings, got %q", features[0].Text)
	}
}
