package geocode

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/location-explorer/internal/observability"
)

// Cache memoizes successful lookups keyed by town key. Entries are never
// evicted and live for the process lifetime only.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Coordinates
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Coordinates)}
}

// Get returns the cached coordinates for a key.
func (c *Cache) Get(key string) (Coordinates, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coords, ok := c.entries[key]
	return coords, ok
}

// Put stores coordinates for a key.
func (c *Cache) Put(key string, coords Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = coords
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CachedClient decorates a Client with a Cache. Only successful results
// are cached, so a failed lookup is retried the next time the same key
// is requested.
type CachedClient struct {
	inner   Client
	cache   *Cache
	metrics *observability.Metrics
}

// CachedOption configures a CachedClient.
type CachedOption func(*CachedClient)

// WithMetrics records cache and request outcomes on the given metrics.
func WithMetrics(m *observability.Metrics) CachedOption {
	return func(c *CachedClient) {
		c.metrics = m
	}
}

// NewCachedClient wraps inner with the given cache. The cache is passed
// in, not created here, so its lifetime is owned by the caller.
func NewCachedClient(inner Client, cache *Cache, opts ...CachedOption) *CachedClient {
	c := &CachedClient{inner: inner, cache: cache}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve implements Client.
func (c *CachedClient) Resolve(ctx context.Context, townKey string) (Coordinates, error) {
	if coords, ok := c.cache.Get(townKey); ok {
		c.countCache("hit")
		return coords, nil
	}
	c.countCache("miss")

	coords, err := c.inner.Resolve(ctx, townKey)
	if err != nil {
		c.countRequest("failure")
		zap.L().Warn("geocode lookup failed",
			zap.String("town_key", townKey),
			zap.Error(err),
		)
		return Coordinates{}, err
	}
	c.countRequest("success")
	c.cache.Put(townKey, coords)
	return coords, nil
}

func (c *CachedClient) countCache(result string) {
	if c.metrics != nil {
		c.metrics.GeocodeCache.WithLabelValues(result).Inc()
	}
}

func (c *CachedClient) countRequest(outcome string) {
	if c.metrics != nil {
		c.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
	}
}
