package aggregate

import "github.com/codefang-tech/lingua/pkg/persist"

// cacheBasename is the on-disk basename used when persisting a Cache,
// before the codec's extension is appended.
const cacheBasename = "lingua-cache"

// persistedCache is the serializable snapshot of a Cache's entries, paired
// with the snapshot id it was built from so a later run can decide between
// an incremental refresh and a full rebuild. It deliberately omits the
// derived per-language totals, which are cheap to rebuild and would
// otherwise need to stay in lockstep with Entries.
type persistedCache struct {
	Snapshot   string      `json:"snapshot,omitempty"`
	MaxEntries int         `json:"max_entries"`
	Entries    []FileEntry `json:"entries"`
}

var cachePersister = persist.NewPersister[persistedCache](cacheBasename, persist.NewJSONCodec())

// SaveCache persists c to dir alongside the snapshot id it was built from
// (empty for directory aggregations), using the project's standard JSON
// state codec.
func SaveCache(dir, snapshot string, c *Cache) error {
	return cachePersister.Save(dir, func() *persistedCache {
		c.mu.RLock()
		maxEntries := c.maxEntries
		c.mu.RUnlock()

		return &persistedCache{
			Snapshot:   snapshot,
			MaxEntries: maxEntries,
			Entries:    c.snapshot(),
		}
	})
}

// LoadCache restores a Cache previously written by SaveCache from dir,
// returning the snapshot id it was built from.
func LoadCache(dir string) (*Cache, string, error) {
	c := NewCache(0)

	var snapshot string

	err := cachePersister.Load(dir, func(state *persistedCache) {
		if state.MaxEntries > 0 {
			c.maxEntries = state.MaxEntries
		}

		snapshot = state.Snapshot

		c.restore(state.Entries)
	})
	if err != nil {
		return nil, "", err
	}

	return c, snapshot, nil
}
