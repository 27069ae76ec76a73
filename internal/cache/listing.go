package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/postline/pkg/logger"
)

const keyPrefix = "listing:"

// ListingCache stores rendered listing responses so repeated reads within the
// TTL return byte-identical bodies, regardless of intervening writes. The
// cache is route-scoped, not object-scoped: Invalidate drops every listing
// key at once.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = 20 * time.Second
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Key derives the cache key for a listing route and page parameter.
func Key(path, page string) string {
	if page == "" {
		page = "1"
	}
	return fmt.Sprintf("%s%s:page:%s", keyPrefix, path, page)
}

func (c *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *ListingCache) Set(ctx context.Context, key string, body []byte) {
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		logger.Warn("listing cache set failed", zap.Error(err))
	}
}

// Invalidate clears the whole listing namespace.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
