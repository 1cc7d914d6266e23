package blob

import (
	"path"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/codefang-tech/lingua/pkg/language"
	"github.com/codefang-tech/lingua/pkg/patterns"
	"github.com/codefang-tech/lingua/pkg/textutil"
)

// likelyBinaryExtensions is a fast-path allow-list of extensions that are
// treated as binary without inspecting content, matching common packaged
// and media formats that would otherwise require a full content read.
var likelyBinaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".tiff": true,
	".zip": true, ".tar": true, ".gz": true, ".tgz": true, ".bz2": true, ".xz": true, ".7z": true, ".rar": true,
	".pdf": true, ".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".mp3": true, ".mp4": true, ".mov": true, ".avi": true, ".wav": true, ".flac": true, ".ogg": true,
	".so": true, ".dll": true, ".dylib": true, ".exe": true, ".bin": true, ".class": true, ".jar": true,
	".wasm": true, ".pyc": true, ".o": true, ".a": true,
}

// Derived wraps a Blob and memoizes the predicates computed from its
// content: each predicate is evaluated at most once per Derived instance,
// regardless of how many times it's queried.
type Derived struct {
	Blob

	dataOnce sync.Once
	data     []byte
	dataErr  error

	binaryOnce sync.Once
	binary     bool

	linesOnce sync.Once
	lines     []string
}

// New wraps b as a Derived view with memoized predicates.
func New(b Blob) *Derived {
	return &Derived{Blob: b}
}

func (d *Derived) bytes() ([]byte, error) {
	d.dataOnce.Do(func() {
		d.data, d.dataErr = d.Blob.Data()
	})

	return d.data, d.dataErr
}

// Extension returns the most specific dot-delimited suffix of the blob's
// name (e.g. ".tar.gz" for "archive.tar.gz"), or "" if the name has none.
func (d *Derived) Extension() string {
	exts := d.Extensions()
	if len(exts) == 0 {
		return ""
	}

	return exts[0]
}

// Extensions returns every dot-delimited suffix of the blob's name, from
// most to least specific.
func (d *Derived) Extensions() []string {
	return language.CandidateExtensions(d.Name())
}

// IsEmpty reports whether the blob has zero bytes.
func (d *Derived) IsEmpty() bool {
	return d.Size() == 0
}

// LikelyBinary reports whether the blob's extension is on the fast-path
// binary allow-list, avoiding a content read entirely.
func (d *Derived) LikelyBinary() bool {
	return likelyBinaryExtensions[strings.ToLower(path.Ext(d.Name()))]
}

// IsBinary reports whether the blob's content contains a null byte within
// the first textutil.BinarySniffLength bytes, or is not valid UTF-8 as a
// whole. Empty
// content is not binary. Errors reading content are treated as binary,
// since the content cannot be safely classified as text.
func (d *Derived) IsBinary() bool {
	d.binaryOnce.Do(func() {
		data, err := d.bytes()
		if err != nil {
			d.binary = true
			return
		}

		if len(data) == 0 {
			d.binary = false
			return
		}

		if textutil.IsBinary(data) {
			d.binary = true
			return
		}

		d.binary = !utf8.Valid(data)
	})

	return d.binary
}

// IsText is the complement of IsBinary.
func (d *Derived) IsText() bool {
	return !d.IsBinary()
}

// IsVendored reports whether the blob's path matches a vendored-path
// convention.
func (d *Derived) IsVendored() bool {
	return patterns.IsVendored(d.Name())
}

// IsDocumentation reports whether the blob's path matches a
// documentation-path convention.
func (d *Derived) IsDocumentation() bool {
	return patterns.IsDocumentation(d.Name())
}

// IsGenerated reports whether the blob looks machine-generated, based on
// its path and a prefix of its content.
func (d *Derived) IsGenerated() bool {
	data, err := d.bytes()
	if err != nil {
		return false
	}

	prefix := data
	if len(prefix) > textutil.BinarySniffLength {
		prefix = prefix[:textutil.BinarySniffLength]
	}

	return patterns.IsGenerated(d.Name(), prefix)
}

// Lines splits the blob's content into lines, recognizing LF, CRLF, and
// lone-CR line endings. The trailing empty element produced by a final
// line terminator is dropped.
func (d *Derived) Lines() []string {
	d.linesOnce.Do(func() {
		data, err := d.bytes()
		if err != nil {
			return
		}

		d.lines = textutil.SplitLines(data)
	})

	return d.lines
}

// FirstLines returns at most n lines from the start of the blob.
func (d *Derived) FirstLines(n int) []string {
	lines := d.Lines()
	if n > len(lines) {
		n = len(lines)
	}

	return lines[:n]
}

// LastLines returns at most n lines from the end of the blob.
func (d *Derived) LastLines(n int) []string {
	lines := d.Lines()
	if n > len(lines) {
		n = len(lines)
	}

	return lines[len(lines)-n:]
}

// IncludeInLanguageStats reports whether the blob should be counted toward
// repository-wide language statistics: it must not be binary, vendored,
// documentation, or generated, and its detected language must accept
// byte-counting (languages of type prose are excluded by convention).
func (d *Derived) IncludeInLanguageStats(lang *language.Language) bool {
	if d.IsBinary() || d.IsEmpty() || d.IsVendored() || d.IsDocumentation() || d.IsGenerated() {
		return false
	}

	if lang == nil {
		return false
	}

	return lang.Type == language.TypeProgramming || lang.Type == language.TypeMarkup
}
