package attrs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codefang-tech/lingua/pkg/attrs"
)

func TestParseAndLookupLanguageOverride(t *testing.T) {
	f := attrs.Parse([]byte("*.proto linguist-language=Protocol-Buffer\n"))

	o := f.Lookup("api/service.proto")
	assert.True(t, o.LanguageSet)
	assert.Equal(t, "Protocol-Buffer", o.Language)
}

func TestParseVendoredOverrideFalse(t *testing.T) {
	f := attrs.Parse([]byte("vendor/* -linguist-vendored\n"))

	o := f.Lookup("vendor/main.go")
	assert.True(t, o.VendoredSet)
	assert.False(t, o.Vendored)
}

func TestParseGeneratedOverrideTrue(t *testing.T) {
	f := attrs.Parse([]byte("*.pb.go linguist-generated\n"))

	o := f.Lookup("api/service.pb.go")
	assert.True(t, o.GeneratedSet)
	assert.True(t, o.Generated)

	unrelated := f.Lookup("api/service.go")
	assert.False(t, unrelated.GeneratedSet)
}

func TestLaterRuleWins(t *testing.T) {
	f := attrs.Parse([]byte("docs/* linguist-documentation\ndocs/api.md -linguist-documentation\n"))

	o := f.Lookup("docs/api.md")
	assert.True(t, o.DocumentSet)
	assert.False(t, o.Documentation)

	other := f.Lookup("docs/guide.md")
	assert.True(t, other.Documentation)
}

func TestDirectoryPrefixPattern(t *testing.T) {
	f := attrs.Parse([]byte("third_party/ linguist-vendored\n"))

	o := f.Lookup("third_party/lib/a.c")
	assert.True(t, o.VendoredSet)
	assert.True(t, o.Vendored)

	notMatched := f.Lookup("other/third_party_notreally/a.c")
	assert.False(t, notMatched.VendoredSet)
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	f := attrs.Parse([]byte("# comment\n\n*.md linguist-documentation\n"))
	o := f.Lookup("README.md")
	assert.True(t, o.Documentation)
}
