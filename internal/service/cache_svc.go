package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Terminal request views are immutable, so they cache safely. Active
// requests are never cached: reading one must run lazy evaluation.
const requestViewTTL = 10 * time.Minute

// CacheService provides a Redis cache-aside layer for resolved request views.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetRequestView retrieves a cached view. Returns nil if not cached or
// cache is disabled.
func (c *CacheService) GetRequestView(ctx context.Context, requestID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, requestKey(requestID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetRequestView stores a resolved view in cache.
func (c *CacheService) SetRequestView(ctx context.Context, requestID string, view interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, requestKey(requestID), b, requestViewTTL).Err()
}

// InvalidateRequest removes a request from cache (called after every
// vote or status transition).
func (c *CacheService) InvalidateRequest(ctx context.Context, requestID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, requestKey(requestID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func requestKey(requestID string) string {
	return fmt.Sprintf("request:%s", requestID)
}
