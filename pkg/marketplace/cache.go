package marketplace

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default capacity of the plugin-name to
// marketplace-directory cache.
const DefaultCacheSize = 128

// directoryEntry records the outcome of a directory lookup. Negative
// outcomes are cached too so repeated lookups of unknown names do not
// trigger a full scan every time.
type directoryEntry struct {
	dir   string
	found bool
}

// directoryCache is a bounded LRU map from plugin name to the marketplace
// directory that declared it. The underlying LRU is safe for concurrent
// use; racing populations of the same key are benign because the lookup is
// idempotent for a fixed filesystem state and the last write wins.
type directoryCache struct {
	lru       *lru.Cache[string, directoryEntry]
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newDirectoryCache(size int) (*directoryCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	c := &directoryCache{}
	inner, err := lru.NewWithEvict(size, func(string, directoryEntry) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = inner
	return c, nil
}

func (c *directoryCache) get(name string) (directoryEntry, bool) {
	entry, ok := c.lru.Get(name)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return entry, ok
}

func (c *directoryCache) add(name string, entry directoryEntry) {
	c.lru.Add(name, entry)
}

// CacheStats is a point-in-time snapshot of directory cache counters.
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

func (c *directoryCache) stats() CacheStats {
	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
	}
}
