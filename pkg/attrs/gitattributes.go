// Package attrs parses .gitattributes files for the "linguist-*" directives
// that override automatic language detection and statistics inclusion on a
// per-path basis.
package attrs

import (
	"bufio"
	"bytes"
	"path"
	"strings"
)

// Overrides holds the linguist-* directives that apply to a single path,
// after resolving every matching .gitattributes rule (later rules win, as
// with ordinary git attribute resolution).
type Overrides struct {
	Language      string
	LanguageSet   bool
	Vendored      bool
	VendoredSet   bool
	Documentation bool
	DocumentSet   bool
	Generated     bool
	GeneratedSet  bool
	Detectable    bool
	DetectableSet bool
}

type rule struct {
	pattern string
	attrs   map[string]string // attribute name -> "true" | "false" | value
}

// File is a parsed .gitattributes file: an ordered list of pattern rules.
type File struct {
	rules []rule
}

// Parse parses the content of a single .gitattributes file. Lines starting
// with "#" and blank lines are ignored. Each remaining line is a
// whitespace-separated pattern followed by one or more attributes, in the
// standard git attribute syntax: a bare name sets it true, "-name" sets it
// false, and "name=value" sets an explicit value (used for
// linguist-language=<Name>).
func Parse(data []byte) *File {
	f := &File{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		r := rule{pattern: fields[0], attrs: make(map[string]string, len(fields)-1)}

		for _, a := range fields[1:] {
			switch {
			case strings.HasPrefix(a, "-"):
				r.attrs[a[1:]] = "false"
			case strings.Contains(a, "="):
				parts := strings.SplitN(a, "=", 2)
				r.attrs[parts[0]] = parts[1]
			default:
				r.attrs[a] = "true"
			}
		}

		f.rules = append(f.rules, r)
	}

	return f
}

// Match reports whether pattern, in simplified gitignore-glob syntax,
// matches relPath. Supported forms: a trailing "/" anchors to a directory
// prefix; "*" and "?" match within a path segment via path.Match; a pattern
// without a "/" matches against the basename of relPath as well as the full
// path.
func Match(pattern, relPath string) bool {
	if strings.HasSuffix(pattern, "/") {
		dir := strings.TrimSuffix(pattern, "/")
		return relPath == dir || strings.HasPrefix(relPath, dir+"/")
	}

	if ok, _ := path.Match(pattern, relPath); ok {
		return true
	}

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(relPath)); ok {
			return true
		}
	}

	return false
}

// Lookup resolves the overrides that apply to relPath, applying every
// matching rule in file order so that later rules take precedence, as with
// ordinary git attribute resolution.
func (f *File) Lookup(relPath string) Overrides {
	var out Overrides

	for _, r := range f.rules {
		if !Match(r.pattern, relPath) {
			continue
		}

		if v, ok := r.attrs["linguist-language"]; ok {
			out.Language = v
			out.LanguageSet = true
		}

		if v, ok := r.attrs["linguist-vendored"]; ok {
			out.Vendored = v == "true"
			out.VendoredSet = true
		}

		if v, ok := r.attrs["linguist-documentation"]; ok {
			out.Documentation = v == "true"
			out.DocumentSet = true
		}

		if v, ok := r.attrs["linguist-generated"]; ok {
			out.Generated = v == "true"
			out.GeneratedSet = true
		}

		if v, ok := r.attrs["linguist-detectable"]; ok {
			out.Detectable = v == "true"
			out.DetectableSet = true
		}
	}

	return out
}
