package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a loaded catalog stays fresh.
const DefaultTTL = 15 * time.Minute

// Cache serves the control catalog from memory, reloading from its sources
// when the entries are older than the TTL. Sources are tried in order; the
// first successful load wins. When every source fails, the previous entries
// are served for the current call without refreshing the load timestamp, so
// the next call retries the sources.
type Cache struct {
	sources []Source
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	entries  []ControlSpec
	loadedAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides the default freshness window.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock injects the time source, used by tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a catalog cache over the given sources.
func NewCache(sources []Source, logger *slog.Logger, opts ...CacheOption) *Cache {
	c := &Cache{
		sources: sources,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  logger.With("system", "catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Specs returns the current catalog, reloading when stale. Concurrent
// callers share a single reload. Source failures are absorbed: the last
// good value is served for the current call, or an empty list when no
// load has ever succeeded. The load timestamp is only advanced on a
// successful reload, so the next call retries the sources.
func (c *Cache) Specs(ctx context.Context) []ControlSpec {
	if len(c.sources) == 0 {
		c.logger.Warn("catalog read with no sources configured", "error", ErrNoSources)
		return []ControlSpec{}
	}

	c.mu.RLock()
	entries, loadedAt := c.entries, c.loadedAt
	c.mu.RUnlock()

	if !loadedAt.IsZero() && c.now().Sub(loadedAt) < c.ttl {
		return entries
	}

	result, err, _ := c.group.Do("reload", func() (any, error) {
		return c.reload(ctx)
	})
	if err != nil {
		if entries != nil {
			c.logger.Warn("serving stale catalog after reload failure", "error", err)
			return entries
		}
		return []ControlSpec{}
	}

	return result.([]ControlSpec)
}

// Invalidate discards the cached entries so the next call reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) reload(ctx context.Context) ([]ControlSpec, error) {
	var lastErr error
	for _, src := range c.sources {
		specs, err := src.Load(ctx)
		if err != nil {
			c.logger.Warn("catalog source failed", "source", src.Name(), "error", err)
			lastErr = err
			continue
		}

		normalized := Normalize(specs)
		c.mu.Lock()
		c.entries = normalized
		c.loadedAt = c.now()
		c.mu.Unlock()

		c.logger.Info("catalog loaded", "source", src.Name(), "specs", len(normalized))
		return normalized, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, lastErr)
}
