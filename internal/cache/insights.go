package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
	"github.com/redis/go-redis/v9"
)

// InsightTTL bounds staleness between journal writes and reads that
// arrive through another instance.
const InsightTTL = 10 * time.Minute

// Store defines the interface for insight list caching
type Store interface {
	Get(ctx context.Context, userID string) ([]models.Insight, bool)
	Set(ctx context.Context, userID string, insights []models.Insight) error
	Invalidate(ctx context.Context, userID string) error
}

// InsightCache implements Store on Redis, keyed per user. The cached
// value is always the full unfiltered list; presentation filters are
// applied after retrieval.
type InsightCache struct {
	client *redis.Client
}

// NewInsightCache creates a new insight cache
func NewInsightCache(client *redis.Client) *InsightCache {
	return &InsightCache{client: client}
}

func insightKey(userID string) string {
	return fmt.Sprintf("insights:journal:%s", userID)
}

// Get returns the cached insight list for a user, with a hit flag.
// Cache errors degrade to a miss; the caller regenerates.
func (c *InsightCache) Get(ctx context.Context, userID string) ([]models.Insight, bool) {
	data, err := c.client.Get(ctx, insightKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var insights []models.Insight
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, false
	}
	return insights, true
}

// Set stores the full generated insight list for a user
func (c *InsightCache) Set(ctx context.Context, userID string, insights []models.Insight) error {
	data, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}
	return c.client.Set(ctx, insightKey(userID), data, InsightTTL).Err()
}

// Invalidate drops the cached list after a journal write
func (c *InsightCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, insightKey(userID)).Err()
}
