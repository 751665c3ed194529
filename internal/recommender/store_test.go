package recommender

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	purchases, reviews := testSignals()
	model, err := Train(TrainingData{Catalog: testCatalog(), Purchases: purchases, Reviews: reviews},
		Weights{Content: 0.7, Collab: 0.3})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// nested path exercises parent directory creation
	path := filepath.Join(t.TempDir(), "models", "recommender.json")
	if err := SaveModel(model, path); err != nil {
		t.Fatalf("SaveModel failed: %v", err)
	}

	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}

	if loaded.Weights != model.Weights {
		t.Errorf("weights differ: %+v vs %+v", loaded.Weights, model.Weights)
	}
	if loaded.Similarity.Len() != model.Similarity.Len() {
		t.Fatalf("matrix sizes differ: %d vs %d", loaded.Similarity.Len(), model.Similarity.Len())
	}
	for _, a := range model.Similarity.IDs {
		for _, b := range model.Similarity.IDs {
			if loaded.Similarity.At(a, b) != model.Similarity.At(a, b) {
				t.Errorf("similarity differs at (%d,%d)", a, b)
			}
		}
	}
	if len(loaded.Products) != len(model.Products) {
		t.Errorf("product tables differ: %d vs %d", len(loaded.Products), len(model.Products))
	}
	if len(loaded.UserLists) != len(model.UserLists) {
		t.Errorf("user lists differ: %d vs %d", len(loaded.UserLists), len(model.UserLists))
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	purchases, reviews := testSignals()
	path := filepath.Join(t.TempDir(), "recommender.json")

	first, err := Train(TrainingData{Catalog: testCatalog(), Purchases: purchases, Reviews: reviews},
		Weights{Content: 1, Collab: 0})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if err := SaveModel(first, path); err != nil {
		t.Fatalf("first SaveModel failed: %v", err)
	}

	second, err := Train(TrainingData{Catalog: testCatalog(), Purchases: purchases, Reviews: reviews},
		Weights{Content: 0, Collab: 1})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if err := SaveModel(second, path); err != nil {
		t.Fatalf("second SaveModel failed: %v", err)
	}

	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}
	if loaded.Weights != (Weights{Content: 0, Collab: 1}) {
		t.Errorf("expected the second snapshot to win, got %+v", loaded.Weights)
	}
}

func TestLoadMissingModel(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}
