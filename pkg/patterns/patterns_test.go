package patterns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codefang-tech/lingua/pkg/patterns"
)

func TestIsVendored(t *testing.T) {
	cases := map[string]bool{
		"vendor/jquery.min.js":       true,
		"node_modules/react/index.js": true,
		"third-party/library.js":     true,
		"deps/openssl/crypto/md5.c":  true,
		"path/to/cache/file.js":      true,
		"dist/bundle.js":             true,
		"path/to/jquery-3.4.1.min.js": true,
		"src/main.js":                false,
		"lib/utils.js":               false,
		"app/components/button.js":   false,
	}

	for path, want := range cases {
		assert.Equal(t, want, patterns.IsVendored(path), path)
	}
}

func TestIsDocumentation(t *testing.T) {
	assert.True(t, patterns.IsDocumentation("README.md"))
	assert.True(t, patterns.IsDocumentation("docs/guide.md"))
	assert.True(t, patterns.IsDocumentation("CHANGELOG.md"))
	assert.False(t, patterns.IsDocumentation("pkg/server/handler.go"))
}

func TestIsGeneratedByMarker(t *testing.T) {
	data := []byte("// Code generated by protoc-gen-go. DO NOT EDIT.\npackage foo\n")
	assert.True(t, patterns.IsGenerated("foo.pb.go", data))

	assert.False(t, patterns.IsGenerated("foo.go", []byte("package foo\n")))
}

func TestIsGeneratedLockfile(t *testing.T) {
	assert.True(t, patterns.IsGenerated("go.sum", []byte("module hash\n")))
	assert.True(t, patterns.IsGenerated("package-lock.json", []byte(`{}`)))
}

func TestIsManpage(t *testing.T) {
	assert.True(t, patterns.IsManpage("tool.1"))
	assert.True(t, patterns.IsManpage("ls.1in"))
	assert.True(t, patterns.IsManpage("passwd.5"))
	assert.True(t, patterns.IsManpage("crontab.5.in"))
	assert.True(t, patterns.IsManpage("intro.man"))
	assert.True(t, patterns.IsManpage("intro.mdoc"))
	assert.False(t, patterns.IsManpage("main.c"))
	assert.False(t, patterns.IsManpage("release.10"))
}

func TestIsGenericExtension(t *testing.T) {
	assert.True(t, patterns.IsGenericExtension(".1"))
	assert.True(t, patterns.IsGenericExtension(".app"))
	assert.True(t, patterns.IsGenericExtension(".url"))
	assert.False(t, patterns.IsGenericExtension(".rs"))
	assert.False(t, patterns.IsGenericExtension(""))
}

func TestLooksLikeManpageContent(t *testing.T) {
	assert.True(t, patterns.LooksLikeManpageContent([]byte(".TH TOOL 1\n.SH NAME\n")))
	assert.False(t, patterns.LooksLikeManpageContent([]byte("plain roff text\n")))
}
