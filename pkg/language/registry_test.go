package language_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-tech/lingua/pkg/language"
)

func TestDefaultRegistryLoads(t *testing.T) {
	reg, err := language.Default()
	require.NoError(t, err)
	require.NotNil(t, reg)

	assert.Greater(t, len(reg.All()), 40)
}

func TestFindByName(t *testing.T) {
	reg := mustRegistry(t)

	l, ok := reg.FindByName("go")
	require.True(t, ok)
	assert.Equal(t, "Go", l.Name)

	_, ok = reg.FindByName("nonexistent-language")
	assert.False(t, ok)
}

func TestFindByAlias(t *testing.T) {
	reg := mustRegistry(t)

	l, ok := reg.FindByAlias("golang")
	require.True(t, ok)
	assert.Equal(t, "Go", l.Name)
}

func TestLookupPrefersNameOverAlias(t *testing.T) {
	// "r" is both R's name and, in this registry, an alias of Rust. Lookup
	// of "r" must resolve to the R language, not Rust, because a name match
	// wins, even when the alias was indexed first.
	reg, err := language.NewRegistry([]*language.Language{
		{Name: "Rust", ID: 1, Aliases: []string{"r"}},
		{Name: "R", ID: 2},
	})
	require.NoError(t, err)

	l, ok := reg.Lookup("r")
	require.True(t, ok)
	assert.Equal(t, "R", l.Name)
}

func TestFindByNameCommaFallback(t *testing.T) {
	reg := mustRegistry(t)

	l, ok := reg.FindByName("go, golang")
	require.True(t, ok)
	assert.Equal(t, "Go", l.Name)
}

func TestLookupCommaFallback(t *testing.T) {
	reg := mustRegistry(t)

	l, ok := reg.Lookup("golang, something-else")
	require.True(t, ok)
	assert.Equal(t, "Go", l.Name)
}

func TestFindByExtensionChainMultiPart(t *testing.T) {
	reg := mustRegistry(t)

	langs := reg.FindByExtensionChain("archive.tar.gz")
	assert.Empty(t, langs, "no registered language claims .tar.gz or .gz in the test catalogue")

	langs = reg.FindByExtensionChain("main.go")
	require.Len(t, langs, 1)
	assert.Equal(t, "Go", langs[0].Name)
}

func TestFindByExtensionAmbiguousHeader(t *testing.T) {
	reg := mustRegistry(t)

	langs := reg.FindByExtension(".h")
	names := make(map[string]bool)

	for _, l := range langs {
		names[l.Name] = true
	}

	assert.True(t, names["C"])
	assert.True(t, names["C++"])
	assert.True(t, names["Objective-C"])
}

func TestFindByFilename(t *testing.T) {
	reg := mustRegistry(t)

	langs := reg.FindByFilename("Makefile")
	require.Len(t, langs, 1)
	assert.Equal(t, "Makefile", langs[0].Name)
}

func TestGroupRollup(t *testing.T) {
	reg := mustRegistry(t)

	tsx, ok := reg.FindByName("TSX")
	require.True(t, ok)

	group := reg.Group(tsx)
	assert.Equal(t, "TypeScript", group.Name)

	goLang, ok := reg.FindByName("Go")
	require.True(t, ok)
	assert.Same(t, goLang, reg.Group(goLang))
}

func TestPopularSortedByName(t *testing.T) {
	reg := mustRegistry(t)

	popular := reg.Popular()
	require.NotEmpty(t, popular)

	for i := 1; i < len(popular); i++ {
		assert.LessOrEqual(t, strings.ToLower(popular[i-1].Name), strings.ToLower(popular[i].Name))
	}
}

func TestNewRegistryRejectsDuplicateName(t *testing.T) {
	_, err := language.NewRegistry([]*language.Language{
		{Name: "Go", ID: 1},
		{Name: "go", ID: 2},
	})
	require.ErrorIs(t, err, language.ErrMalformedCatalogue)
}

func TestNewRegistryRejectsDuplicateID(t *testing.T) {
	_, err := language.NewRegistry([]*language.Language{
		{Name: "Go", ID: 1},
		{Name: "Rust", ID: 1},
	})
	require.ErrorIs(t, err, language.ErrMalformedCatalogue)
}

func mustRegistry(t *testing.T) *language.Registry {
	t.Helper()

	reg, err := language.Default()
	require.NoError(t, err)

	return reg
}
