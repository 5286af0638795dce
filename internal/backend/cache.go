package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"locator/internal/domain"
)

// Cache stores backend responses in Redis, keyed by the committed query.
// A hit still gets a fresh QueryID: each execution is a new query even
// when its results are identical.
type Cache struct {
	next   Client
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// cachedResponse is the JSON payload stored per key
type cachedResponse struct {
	Results []domain.Result `json:"results"`
	Total   int             `json:"total"`
}

// NewCache connects to Redis and wraps next
func NewCache(next Client, redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewCacheWithClient(next, client, ttl), nil
}

// NewCacheWithClient wraps next using an existing Redis client
func NewCacheWithClient(next Client, client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		next:   next,
		client: client,
		prefix: "locator:query:",
		ttl:    ttl,
	}
}

// ExecuteVerticalQuery serves from Redis when possible, else from next.
// Redis failures degrade to an uncached query.
func (c *Cache) ExecuteVerticalQuery(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	key, err := c.key(req)
	if err != nil {
		return c.next.ExecuteVerticalQuery(ctx, req)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return domain.QueryResponse{
				QueryID: uuid.NewString(),
				Results: cached.Results,
				Total:   cached.Total,
			}, nil
		}
		log.Printf("backend: discarding undecodable cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("backend: cache lookup failed: %v", err)
	}

	resp, err := c.next.ExecuteVerticalQuery(ctx, req)
	if err != nil {
		return resp, err
	}

	data, err := json.Marshal(cachedResponse{Results: resp.Results, Total: resp.Total})
	if err != nil {
		log.Printf("backend: marshal cache entry: %v", err)
		return resp, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("backend: cache store failed: %v", err)
	}
	return resp, nil
}

// key hashes everything that influences the backend's answer
func (c *Cache) key(req domain.QueryRequest) (string, error) {
	payload, err := json.Marshal(struct {
		State domain.QueryState `json:"state"`
		Limit int               `json:"limit"`
	}{req.State, req.Limit})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return c.prefix + hex.EncodeToString(sum[:]), nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
