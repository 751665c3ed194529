package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/easybuyhq/recommendation-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// payload is what gets serialized per cache entry: the ranked list plus
// whether it came from the cold-start path.
type payload struct {
	Recommendations []domain.RecommendedProduct `json:"recommendations"`
	ColdStart       bool                        `json:"cold_start"`
}

func buildKey(userID int64, limit int, purchasedPenalty bool) string {
	return fmt.Sprintf("rec:user:%d:limit:%d:penalty:%t", userID, limit, purchasedPenalty)
}

// Get returns the cached ranked list for a user, found=false on a miss.
func (c *Cache) Get(ctx context.Context, userID int64, limit int, purchasedPenalty bool) ([]domain.RecommendedProduct, bool, bool, error) {
	key := buildKey(userID, limit, purchasedPenalty)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, false, nil
	}
	if err != nil {
		return nil, false, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var p payload
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, false, false, fmt.Errorf("failed to unmarshal recommendations %s: %w", key, err)
	}
	return p.Recommendations, p.ColdStart, true, nil
}

// Set stores a ranked list for a user.
func (c *Cache) Set(ctx context.Context, userID int64, limit int, purchasedPenalty bool, recs []domain.RecommendedProduct, coldStart bool) error {
	key := buildKey(userID, limit, purchasedPenalty)
	val, err := json.Marshal(payload{Recommendations: recs, ColdStart: coldStart})
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// ClearAll drops every cached list, used after a new model snapshot is
// loaded.
func (c *Cache) ClearAll(ctx context.Context) error {
	return c.clearPattern(ctx, "rec:user:*")
}

func (c *Cache) clearPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
