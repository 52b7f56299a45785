package boundaries

import (
	"slices"
	"time"

	"bennypowers.dev/twls/internal/scopes"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultCacheSize bounds the number of cached documents
	DefaultCacheSize = 25
	// DefaultCacheTTL is how long a cached result stays valid
	DefaultCacheTTL = time.Second
)

// Cache memoizes Detect for recently seen documents. Entries are keyed by
// language id and full text, so an edit never sees a stale result. It is
// safe for concurrent use.
type Cache struct {
	entries *expirable.LRU[string, []scopes.Boundary]
}

// NewCache creates a cache holding at most size results for ttl each
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{entries: expirable.NewLRU[string, []scopes.Boundary](size, nil, ttl)}
}

func cacheKey(text, languageID string) string {
	return languageID + ":" + text
}

// Detect returns the boundaries of text, computing them at most once per
// cache lifetime
func (c *Cache) Detect(text, languageID string) []scopes.Boundary {
	key := cacheKey(text, languageID)
	if cached, ok := c.entries.Get(key); ok {
		return slices.Clone(cached)
	}
	detected := Detect(text, languageID)
	c.entries.Add(key, detected)
	return slices.Clone(detected)
}

// Cached reports whether an unexpired result for text is held
func (c *Cache) Cached(text, languageID string) bool {
	_, ok := c.entries.Peek(cacheKey(text, languageID))
	return ok
}

// Len returns the number of cached results
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached result
func (c *Cache) Purge() {
	c.entries.Purge()
}
