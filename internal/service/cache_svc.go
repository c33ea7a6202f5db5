package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Feed pages churn with every upload, so they expire fast;
// single-video lookups live a little longer.
const (
	FeedCacheTTL  = 1 * time.Minute
	VideoCacheTTL = 5 * time.Minute
)

// CacheService provides a Redis cache-aside layer for feed pages and video
// lookups.
type CacheService struct {
	rdb    *redis.Client
	hits   prometheus.Counter
	misses prometheus.Counter
}

// Instrument attaches hit/miss counters. A disabled cache counts neither:
// every read goes to the database regardless, so it is not a miss.
func (c *CacheService) Instrument(hits, misses prometheus.Counter) {
	c.hits = hits
	c.misses = misses
}

func (c *CacheService) countHit() {
	if c.hits != nil {
		c.hits.Inc()
	}
}

func (c *CacheService) countMiss() {
	if c.misses != nil {
		c.misses.Inc()
	}
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
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

// GetFeedPage retrieves a cached feed page. Returns nil when not cached or
// the cache is disabled.
func (c *CacheService) GetFeedPage(ctx context.Context, orderBy, order string, limit, offset int) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, feedKey(orderBy, order, limit, offset)).Bytes()
	if err == redis.Nil {
		c.countMiss()
		return nil, nil
	}
	if err == nil {
		c.countHit()
	}
	return data, err
}

// SetFeedPage stores a feed page response.
func (c *CacheService) SetFeedPage(ctx context.Context, orderBy, order string, limit, offset int, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, feedKey(orderBy, order, limit, offset), b, FeedCacheTTL).Err()
}

// InvalidateFeed drops all cached feed pages (called after an upload or
// delete changes the feed's contents).
func (c *CacheService) InvalidateFeed(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	keys, err := c.rdb.Keys(ctx, "feed:*").Result()
	if err != nil || len(keys) == 0 {
		return err
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// GetVideo retrieves a cached video response. Returns nil when not cached.
func (c *CacheService) GetVideo(ctx context.Context, videoID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		c.countMiss()
		return nil, nil
	}
	if err == nil {
		c.countHit()
	}
	return data, err
}

// SetVideo stores a video response.
func (c *CacheService) SetVideo(ctx context.Context, videoID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err()
}

// InvalidateVideo removes a video from cache (called after interaction
// changes).
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, videoKey(videoID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func feedKey(orderBy, order string, limit, offset int) string {
	return fmt.Sprintf("feed:%s:%s:%d:%d", orderBy, order, limit, offset)
}

func videoKey(videoID string) string {
	return fmt.Sprintf("video:%s", videoID)
}
