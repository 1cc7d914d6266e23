// Package cache provides the LRU blob cache shared by snapshot
// aggregations: blobs are keyed by object id, so an unchanged file costs
// one read no matter how many snapshots it appears in.
package cache

import (
	"container/list"
	"sync"

	"github.com/codefang-tech/lingua/pkg/gitlib"
	"github.com/codefang-tech/lingua/pkg/units"
)

// DefaultLRUCacheSize is the default byte budget for cached blob content.
const DefaultLRUCacheSize = 256 * units.MiB

// LRUBlobCache is a size-bounded, least-recently-used cache of blob
// content keyed by object id. Safe for concurrent use.
type LRUBlobCache struct {
	mu      sync.Mutex
	order   *list.List // front = most recently used
	entries map[gitlib.Hash]*list.Element
	maxSize int64
	curSize int64

	hits   int64
	misses int64
}

type lruEntry struct {
	hash gitlib.Hash
	blob *gitlib.CachedBlob
}

// NewLRUBlobCache builds a cache holding at most maxSize bytes of blob
// content. A non-positive maxSize uses DefaultLRUCacheSize.
func NewLRUBlobCache(maxSize int64) *LRUBlobCache {
	if maxSize <= 0 {
		maxSize = DefaultLRUCacheSize
	}

	return &LRUBlobCache{
		order:   list.New(),
		entries: make(map[gitlib.Hash]*list.Element),
		maxSize: maxSize,
	}
}

// Get returns the cached blob for hash, or nil on a miss. A hit promotes
// the entry to most recently used.
func (c *LRUBlobCache) Get(hash gitlib.Hash) *gitlib.CachedBlob {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[hash]
	if !ok {
		c.misses++
		return nil
	}

	c.hits++
	c.order.MoveToFront(elem)

	return elem.Value.(*lruEntry).blob
}

// Put stores blob under hash, evicting least-recently-used entries until
// the byte budget holds. Blobs larger than the whole budget are not
// cached at all.
func (c *LRUBlobCache) Put(hash gitlib.Hash, blob *gitlib.CachedBlob) {
	if blob == nil || blob.Size() > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[hash]; ok {
		old := elem.Value.(*lruEntry)
		c.curSize += blob.Size() - old.blob.Size()
		old.blob = blob
		c.order.MoveToFront(elem)
	} else {
		c.entries[hash] = c.order.PushFront(&lruEntry{hash: hash, blob: blob})
		c.curSize += blob.Size()
	}

	for c.curSize > c.maxSize {
		c.evictOldestLocked()
	}
}

func (c *LRUBlobCache) evictOldestLocked() {
	elem := c.order.Back()
	if elem == nil {
		return
	}

	entry := c.order.Remove(elem).(*lruEntry)
	delete(c.entries, entry.hash)
	c.curSize -= entry.blob.Size()
}

// Clear drops every entry but keeps hit and miss counters.
func (c *LRUBlobCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.entries = make(map[gitlib.Hash]*list.Element)
	c.curSize = 0
}

// LRUStats is a point-in-time snapshot of the cache's counters.
type LRUStats struct {
	Entries int
	Bytes   int64
	Hits    int64
	Misses  int64
}

// Stats returns the cache's current counters.
func (c *LRUBlobCache) Stats() LRUStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return LRUStats{
		Entries: len(c.entries),
		Bytes:   c.curSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// HitRate returns the fraction of lookups served from the cache, or 0
// when nothing has been looked up yet.
func (s LRUStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}
