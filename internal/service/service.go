package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync/atomic"

	"github.com/easybuyhq/recommendation-service/internal/cache"
	"github.com/easybuyhq/recommendation-service/internal/config"
	"github.com/easybuyhq/recommendation-service/internal/domain"
	"github.com/easybuyhq/recommendation-service/internal/recommender"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// DataStore is the slice of repository behavior serving needs.
type DataStore interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	GetPurchasedProductIDs(ctx context.Context, userID int64) ([]int64, error)
	GetReviewedProductIDs(ctx context.Context, userID int64) ([]int64, error)
	GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	GetMostReviewedProductIDs(ctx context.Context, limit int) ([]int64, error)
	GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}

// ModelLoader produces the current trained snapshot.
type ModelLoader interface {
	Load() (*recommender.Model, error)
}

// FileLoader loads snapshots from the configured path on disk.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load() (*recommender.Model, error) {
	return recommender.LoadModel(l.Path)
}

type Service struct {
	repo     DataStore
	cache    *cache.Cache // nil disables result caching
	loader   ModelLoader
	strategy string

	// model caches the loaded snapshot for the process lifetime; it is
	// only dropped by an explicit reload signal.
	model atomic.Pointer[recommender.Model]
}

func NewService(repo DataStore, c *cache.Cache, loader ModelLoader, strategy string) *Service {
	if strategy == "" {
		strategy = config.StrategyItem
	}
	return &Service{
		repo:     repo,
		cache:    c,
		loader:   loader,
		strategy: strategy,
	}
}

// GetRecommendations returns the ranked top-N products for a user. An
// unresolvable user yields an empty result, and a missing model or empty
// history degrades to the cold-start popularity list; neither is an error.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, limit int, purchasedPenalty bool) (*domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	if s.cache != nil {
		recs, coldStart, found, err := s.cache.Get(ctx, userID, limit, purchasedPenalty)
		if err != nil {
			log.Printf("[service] cache get error for user %d: %v", userID, err)
		}
		if found {
			return &domain.RecommendationResult{
				Recommendations: recs,
				ColdStart:       coldStart,
				CacheHit:        true,
			}, nil
		}
	}

	result, err := s.generateRecommendations(ctx, userID, limit, purchasedPenalty)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, userID, limit, purchasedPenalty, result.Recommendations, result.ColdStart); cacheErr != nil {
			log.Printf("[service] cache set error for user %d: %v", userID, cacheErr)
		}
	}
	return result, nil
}

func (s *Service) generateRecommendations(ctx context.Context, userID int64, limit int, purchasedPenalty bool) (*domain.RecommendationResult, error) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !exists {
		return &domain.RecommendationResult{}, nil
	}

	seeds, err := s.seedItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	model, err := s.snapshot()
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			return s.coldStart(ctx, limit)
		}
		return nil, err
	}

	if len(seeds) == 0 {
		return s.coldStart(ctx, limit)
	}

	if s.strategy == config.StrategyUser {
		if ids, ok := model.UserLists[userID]; ok {
			return s.hydrateIDs(ctx, ids, limit)
		}
		// fall through to item-item aggregation for users the
		// precomputation never saw
	}

	scored := model.RecommendForSeeds(seeds, limit, purchasedPenalty)
	recs, err := s.hydrate(ctx, scored)
	if err != nil {
		return nil, err
	}
	return &domain.RecommendationResult{Recommendations: recs}, nil
}

// seedItems is the union of a user's purchased and reviewed product ids,
// sorted so downstream aggregation is order-independent.
func (s *Service) seedItems(ctx context.Context, userID int64) ([]int64, error) {
	purchased, err := s.repo.GetPurchasedProductIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch purchased products: %w", err)
	}
	reviewed, err := s.repo.GetReviewedProductIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch reviewed products: %w", err)
	}

	set := make(map[int64]bool, len(purchased)+len(reviewed))
	for _, id := range purchased {
		set[id] = true
	}
	for _, id := range reviewed {
		set[id] = true
	}

	seeds := make([]int64, 0, len(set))
	for id := range set {
		seeds = append(seeds, id)
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i] < seeds[j] })
	return seeds, nil
}

// coldStart ranks by descending review count, ties by ascending id.
func (s *Service) coldStart(ctx context.Context, limit int) (*domain.RecommendationResult, error) {
	ids, err := s.repo.GetMostReviewedProductIDs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch most reviewed products: %w", err)
	}
	result, err := s.hydrateIDs(ctx, ids, limit)
	if err != nil {
		return nil, err
	}
	result.ColdStart = true
	return result, nil
}

// GetSimilarProducts returns the ranked neighbors of one product. A
// product unknown to the model yields an empty list; a missing model
// surfaces domain.ErrModelUnavailable.
func (s *Service) GetSimilarProducts(ctx context.Context, productID int64, limit int) ([]domain.RecommendedProduct, error) {
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	model, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, model.SimilarItems(productID, limit))
}

// ReloadModel drops the cached snapshot so the next call loads the newly
// trained one, and flushes cached results computed from the old model.
func (s *Service) ReloadModel(ctx context.Context) {
	s.model.Store(nil)
	if s.cache != nil {
		if err := s.cache.ClearAll(ctx); err != nil {
			log.Printf("[service] cache flush error on model reload: %v", err)
		}
	}
}

// snapshot returns the process-cached model, loading it on first use.
func (s *Service) snapshot() (*recommender.Model, error) {
	if m := s.model.Load(); m != nil {
		return m, nil
	}
	m, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	s.model.Store(m)
	return m, nil
}

// hydrate resolves scored candidates against the live catalog, preserving
// rank order and silently dropping ids that no longer exist.
func (s *Service) hydrate(ctx context.Context, scored []recommender.ScoredItem) ([]domain.RecommendedProduct, error) {
	ids := make([]int64, len(scored))
	for i, item := range scored {
		ids[i] = item.ProductID
	}
	products, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	recs := make([]domain.RecommendedProduct, 0, len(scored))
	for _, item := range scored {
		p, ok := products[item.ProductID]
		if !ok {
			continue // deleted since the model was trained
		}
		recs = append(recs, domain.RecommendedProduct{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Price:     p.Price,
			Score:     item.Score,
		})
	}
	return recs, nil
}

func (s *Service) hydrateIDs(ctx context.Context, ids []int64, limit int) (*domain.RecommendationResult, error) {
	if len(ids) > limit {
		ids = ids[:limit]
	}
	scored := make([]recommender.ScoredItem, len(ids))
	for i, id := range ids {
		scored[i] = recommender.ScoredItem{ProductID: id}
	}
	recs, err := s.hydrate(ctx, scored)
	if err != nil {
		return nil, err
	}
	return &domain.RecommendationResult{Recommendations: recs}, nil
}
