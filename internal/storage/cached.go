package storage

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	listingCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dmr_folder_cache_hits_total",
		Help: "Folder listings served from the listing cache.",
	})
	listingCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dmr_folder_cache_misses_total",
		Help: "Folder listings fetched from the file store.",
	})
)

// CachedStore caches ListChildren results for a short TTL. Link calls pass through.
type CachedStore struct {
	FileStore
	listings *expirable.LRU[string, []Entry]
}

// NewCachedStore wraps inner with a listing cache. A non-positive size or
// ttl disables caching and returns inner unchanged.
func NewCachedStore(inner FileStore, size int, ttl time.Duration) FileStore {
	if size <= 0 || ttl <= 0 {
		return inner
	}
	return &CachedStore{
		FileStore: inner,
		listings:  expirable.NewLRU[string, []Entry](size, nil, ttl),
	}
}

// ListChildren returns a cached listing or fetches and caches it. Failures are not cached.
func (c *CachedStore) ListChildren(ctx context.Context, folderPath string) ([]Entry, error) {
	if entries, ok := c.listings.Get(folderPath); ok {
		listingCacheHits.Inc()
		return append([]Entry(nil), entries...), nil
	}
	listingCacheMisses.Inc()
	entries, err := c.FileStore.ListChildren(ctx, folderPath)
	if err != nil {
		return nil, err
	}
	c.listings.Add(folderPath, append([]Entry(nil), entries...))
	return entries, nil
}

// Purge drops every cached listing.
func (c *CachedStore) Purge() {
	c.listings.Purge()
}

// Close drops the cache and closes the wrapped store.
func (c *CachedStore) Close(ctx context.Context) error {
	c.Purge()
	return Close(ctx, c.FileStore)
}
