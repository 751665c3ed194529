package recommender

import (
	"errors"
	"fmt"
	"time"

	"github.com/easybuyhq/recommendation-service/internal/domain"
)

// TrainingData is the full snapshot of raw signals a build consumes.
type TrainingData struct {
	Catalog   []domain.CatalogEntry
	Purchases []domain.PurchaseSignal
	Reviews   []domain.ReviewSignal
}

// Train builds a complete snapshot: feature table, content similarity,
// interaction pivot, collaborative similarity, weighted combination, and
// the precomputed user-user lists. It is a single offline batch step;
// concurrent trainings are serialized by the caller, not here.
func Train(data TrainingData, w Weights) (*Model, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	features, err := BuildFeatures(data.Catalog)
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}
	productIDs := featureIDs(features)

	contentSim := ContentSimilarity(features)

	interactions, err := BuildInteractions(data.Purchases, data.Reviews)
	if err != nil && !errors.Is(err, domain.ErrNoCollaborativeData) {
		return nil, fmt.Errorf("build interactions: %w", err)
	}
	collabSim := CollaborativeSimilarity(interactions, productIDs)

	combined, err := Combine(contentSim, collabSim, w.Content, w.Collab)
	if err != nil {
		return nil, err
	}

	products := make([]ProductMeta, len(features))
	for i, f := range features {
		products[i] = ProductMeta{ID: f.ID, Name: f.Name, Category: f.Category}
	}

	return &Model{
		Similarity: combined,
		Products:   products,
		Weights:    w,
		UserLists:  buildUserLists(interactions),
		TrainedAt:  time.Now().UTC(),
	}, nil
}
