// internal/history/cache.go
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/models"
)

const recentKeyPrefix = "history:recent:"

// Cache keeps the most recent plan per user in Redis so repeat lookups skip
// Elasticsearch entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "history-cache"}),
	}
}

// GetRecent returns the cached latest entry. A miss or a decode problem is
// reported as a plain miss.
func (c *Cache) GetRecent(ctx context.Context, userID string) (*models.HistoryEntry, bool) {
	raw, err := c.client.Get(ctx, recentKeyPrefix+userID).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("cache read failed", map[string]interface{}{
				"userId": userID,
			})
		}
		return nil, false
	}

	var entry models.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.WithError(err).Warn("cache entry corrupt, dropping", map[string]interface{}{
			"userId": userID,
		})
		c.client.Del(ctx, recentKeyPrefix+userID)
		return nil, false
	}

	return &entry, true
}

func (c *Cache) SetRecent(ctx context.Context, userID string, entry models.HistoryEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recentKeyPrefix+userID, raw, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, recentKeyPrefix+userID).Err()
}
