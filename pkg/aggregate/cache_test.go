package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-tech/lingua/pkg/aggregate"
)

func TestCacheLanguageTotals(t *testing.T) {
	c := aggregate.NewCache(0)

	c.TestAdd(aggregate.FileEntry{Path: "a.go", Language: "Go", Bytes: 100, Counted: true})
	c.TestAdd(aggregate.FileEntry{Path: "b.go", Language: "Go", Bytes: 50, Counted: true})
	c.TestAdd(aggregate.FileEntry{Path: "c.py", Language: "Python", Bytes: 50, Counted: true})

	stats := c.Languages()
	require.Len(t, stats, 2)
	assert.Equal(t, "Go", stats[0].Name)
	assert.Equal(t, int64(150), stats[0].Bytes)
	assert.Equal(t, 2, stats[0].Files)
	assert.InDelta(t, 75.0, stats[0].Percentage, 0.01)

	assert.Equal(t, int64(200), c.Size())
}

func TestCacheUncountedExcluded(t *testing.T) {
	c := aggregate.NewCache(0)

	c.TestAdd(aggregate.FileEntry{Path: "vendor/a.js", Language: "JavaScript", Bytes: 1000, Counted: false})

	assert.Equal(t, int64(0), c.Size())
	assert.Empty(t, c.Languages())

	lang, ok := c.LanguageOf("vendor/a.js")
	require.True(t, ok)
	assert.Equal(t, "JavaScript", lang)
}

func TestCacheEntryCeiling(t *testing.T) {
	c := aggregate.NewCache(2)

	assert.True(t, c.TestAdd(aggregate.FileEntry{Path: "a", Language: "Go", Bytes: 1, Counted: true}))
	assert.True(t, c.TestAdd(aggregate.FileEntry{Path: "b", Language: "Go", Bytes: 1, Counted: true}))
	assert.False(t, c.TestAdd(aggregate.FileEntry{Path: "c", Language: "Go", Bytes: 1, Counted: true}))
	assert.True(t, c.Truncated())
}

func TestCacheRemove(t *testing.T) {
	c := aggregate.NewCache(0)

	c.TestAdd(aggregate.FileEntry{Path: "a.go", Language: "Go", Bytes: 100, Counted: true})
	c.TestRemove("a.go")

	assert.Equal(t, int64(0), c.Size())
	_, ok := c.LanguageOf("a.go")
	assert.False(t, ok)
}

func TestCacheSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	c := aggregate.NewCache(0)
	c.TestAdd(aggregate.FileEntry{Path: "a.go", Language: "Go", Bytes: 100, Counted: true})
	c.TestAdd(aggregate.FileEntry{Path: "README.md", Language: "Markdown", Bytes: 30, Counted: false})

	require.NoError(t, aggregate.SaveCache(dir, "deadbeef", c))

	loaded, snapshot, err := aggregate.LoadCache(dir)
	require.NoError(t, err)

	assert.Equal(t, "deadbeef", snapshot)
	assert.Equal(t, c.Size(), loaded.Size())
	assert.ElementsMatch(t, c.BreakdownByFile(), loaded.BreakdownByFile())
}
